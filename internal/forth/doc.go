/*
Package forth implements the small stack language behind forthbyte: a
tokenizer, a one pass parser that inlines user words into a flat statement
list, and an evaluator that runs that list once per audio sample.

A source is a sequence of numbers, words and definitions:

	: saw  t 256 % ;      ( define a word )
	saw t 8 >> &          \ use it

Words resolve at parse time against, in order, the variables the host has
registered (like "t" for the sample timer), the words defined so far, and
the built-in primitives. A definition's body is copied into every use, so
there are no calls at run time, no recursion, and no forward references.

The evaluator works on fixed arrays allocated by New: data stack, return
stack, variables and memory. Both stacks wrap around silently instead of
overflowing, which makes evaluation bounded and allocation free; that is
what lets a host call Eval from inside an audio callback.

Interpreters are generic over the element type. Bytebeat uses int64 with
integer semantics (comparisons yield all bits set, "not" complements, "%" is
the integer remainder); Floatbeat uses float64 (comparisons yield 1.0, "not"
is logical, "%" is fmod, division by zero is +Inf).
*/
package forth
