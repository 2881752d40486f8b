package forth

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Dump writes a listing of prog, one statement per line. Variable slots are
// printed by name when names is long enough to hold them.
func Dump[T Number](w io.Writer, prog *Program[T], names []string) {
	dumper[T]{out: w, names: names}.dumpProgram(prog)
}

// Dump writes the interpreter's state: stack pointers and live stack
// contents, variables, user words and nonzero memory.
func (in *Interpreter[T, A]) Dump(w io.Writer) {
	dump := dumper[T]{out: w, names: in.vars.names}
	fmt.Fprintf(w, "# Interpreter Dump\n")
	fmt.Fprintf(w, "  capacity: %v\n", in.Capacity())
	dump.dumpStack("stack", in.stack, in.sp)
	dump.dumpStack("rstack", in.rstack, in.rp)

	fmt.Fprintf(w, "# Variables\n")
	for index, name := range in.vars.names {
		fmt.Fprintf(w, "  @%v %v = %v\n", index, name, in.Globals[index])
	}

	fmt.Fprintf(w, "# Words\n")
	for _, name := range in.Words() {
		var buf strings.Builder
		fmt.Fprintf(&buf, "  : %v", name)
		for _, stmt := range in.dictionary[name] {
			buf.WriteByte(' ')
			dump.formatStatement(&buf, stmt)
		}
		buf.WriteString(" ;\n")
		io.WriteString(w, buf.String())
	}

	fmt.Fprintf(w, "# Memory\n")
	width := len(strconv.Itoa(len(in.Memory)))
	for addr, v := range in.Memory {
		if v != 0 {
			fmt.Fprintf(w, "  @%*v %v\n", width, addr, v)
		}
	}
}

type dumper[T Number] struct {
	out   io.Writer
	names []string
}

func (dump dumper[T]) dumpProgram(prog *Program[T]) {
	fmt.Fprintf(dump.out, "# Program\n")
	width := len(strconv.Itoa(len(prog.Statements)))
	var buf strings.Builder
	for i, stmt := range prog.Statements {
		buf.Reset()
		fmt.Fprintf(&buf, "  @%*v ", width, i)
		dump.formatStatement(&buf, stmt)
		buf.WriteByte('\n')
		io.WriteString(dump.out, buf.String())
	}
}

// dumpStack shows the slots below the pointer, oldest first; values left
// behind by wrapping past the end are not shown.
func (dump dumper[T]) dumpStack(name string, stack []T, sp int) {
	fmt.Fprintf(dump.out, "  %v: @%v %v\n", name, sp, stack[:sp])
}

func (dump dumper[T]) formatStatement(buf *strings.Builder, stmt Statement[T]) {
	switch stmt.Kind {
	case ValueStatement:
		fmt.Fprintf(buf, "%v", stmt.Value)
	case PrimitiveStatement:
		buf.WriteString(stmt.Prim.String())
	case VariableStatement:
		if stmt.Index >= 0 && stmt.Index < len(dump.names) {
			buf.WriteString(dump.names[stmt.Index])
		} else {
			fmt.Fprintf(buf, "var_%v", stmt.Index)
		}
	default:
		buf.WriteString(stmt.String())
	}
}
