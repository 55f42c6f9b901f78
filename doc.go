// Package argsynth derives a command line interface from a Go function or struct type.
//
// A target is either a function taking one parameter struct:
//
//	// paint paints a wall.
//	//
//	// Args:
//	//
//	//	coats: The number of coats to apply.
//	func paint(ctx context.Context, args PaintArgs) error
//
// or a struct type with a Run method, whose fields are filled from the command line
// before Run is called:
//
//	type Car struct {
//		Name  string
//		Color string `opt:"default=red"`
//	}
//
//	func (c Car) Run() error
//
// Each exported field becomes a --snake_case flag. Fields with a default (an
// `opt:"default=..."` tag, or a non-zero field of the value passed to Run) are
// optional; the rest are required. Descriptions come from the `desc=` tag, the
// Args/Parameters section of the target's doc comment, or the field's own comment.
// A description of the form "either 'a' or 'b'" restricts the flag to those two
// values, and "The <word> ..." names the value placeholder <WORD>.
//
// Single-letter aliases are assigned in field order; -h and -v are reserved for
// --help and --version.
package argsynth
