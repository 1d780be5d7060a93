package forth

import (
	"fmt"
	"io"
)

// session reads and interprets tokens until input runs out or the word bye.
// Errors end the session unless interactive, in which case errors from
// Forth code are printed and the rest of the line discarded.
func (vm *VM) session(interactive bool) error {
	vm.interactive = interactive
	for {
		token, err := vm.rd.word()
		if err == errNeedInput {
			more, err := vm.refill()
			if err != nil {
				return err
			}
			if !more {
				break
			}
			continue
		}

		if token == "bye" {
			vm.logf(">", "bye")
			vm.resetCompiler()
			return nil
		}

		if err := vm.catch(func() { vm.interpret(token) }); err != nil {
			err = fmt.Errorf("%v: %w", vm.rd.loc, err)
			vm.resetCompiler()
			if !interactive || !IsForthError(err) {
				return err
			}
			vm.logf(">", "error: %v", err)
			if _, werr := fmt.Fprintf(&vm.out, "%v\n", err); werr != nil {
				return werr
			}
			vm.rd.skipLine()
		}
	}

	if len(vm.control) > 0 {
		name := vm.control[0].name
		vm.resetCompiler()
		err := fmt.Errorf("%v: %w", vm.rd.loc, compileErrorf("unterminated definition of %q", name))
		if !interactive {
			return err
		}
		_, werr := fmt.Fprintf(&vm.out, "%v\n", err)
		return werr
	}
	vm.compiling = false
	return nil
}

// refill pulls the next line of input into the reader, prompting first when
// interactive. Returns false at end of input.
func (vm *VM) refill() (bool, error) {
	if vm.ctx != nil {
		if err := vm.ctx.Err(); err != nil {
			return false, err
		}
	}
	if vm.interactive {
		prompt := vm.prompt
		if vm.compiling || len(vm.control) > 0 {
			prompt = vm.contPrompt
		}
		if _, err := io.WriteString(&vm.out, prompt); err != nil {
			return false, err
		}
	}
	if err := vm.out.Flush(); err != nil {
		return false, err
	}
	line, err := vm.in.ReadLine()
	if err == io.EOF {
		return false, nil
	} else if err != nil {
		return false, err
	}
	vm.logf(">", "read %v", line)
	vm.rd.feed(line)
	return true, nil
}

func (vm *VM) mustRefill() {
	more, err := vm.refill()
	vm.haltif(err)
	if !more {
		vm.halt(compileErrorf("unexpected end of input"))
	}
}

// nextWord reads a case folded word for a parsing word like : or create.
func (vm *VM) nextWord() string {
	for {
		word, err := vm.rd.word()
		if err == nil {
			return word
		}
		vm.mustRefill()
	}
}

func (vm *VM) nextToken() string {
	for {
		token, err := vm.rd.token()
		if err == nil {
			return token
		}
		vm.mustRefill()
	}
}

func (vm *VM) nextChar() rune {
	for {
		r, err := vm.rd.char()
		if err == nil {
			return r
		}
		vm.mustRefill()
	}
}
