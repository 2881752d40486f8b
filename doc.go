// Command forthbyte renders bytebeat and floatbeat music written in a tiny
// FORTH dialect.
//
// A source is evaluated once per sample. Before each evaluation the timer t
// holds the sample number, sr the sample rate and c the channel; whatever is
// left on top of the stack is the sample. For example a classic bytebeat:
//
//	#byte
//	t t 8 >> |
//
// and a floatbeat sine at 440Hz:
//
//	#samplerate 44100
//	t sr / 440 * 2 * 3.14159 * sin
//
// Lines starting with "#" are directives (see internal/preprocess); "//", "\"
// and "( ... )" or "/* ... */" are comments. Words are defined with ": name
// ... ;" and are inlined wherever they are used.
//
// Usage:
//
//	forthbyte [flags] file.fb...
//
// Each file is compiled and rendered to a WAV file next to it, or to a raw
// unsigned 8-bit stream with -format raw (play it with "aplay -f U8 -r 8000").
// Several files are rendered concurrently. -dump prints the compiled listing
// instead, and -emit saves the compiled program as CBOR; a .cbor file given as
// input is loaded instead of compiled.
//
// Settings may also come from a TOML file given with -config:
//
//	output_rate = 48000
//	seconds = 60
//	format = "wav"
//	volume = 0.5
//
// Flags given on the command line take precedence over the file.
package main
