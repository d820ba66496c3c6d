/*
Package lispy implements a small Lisp dialect with dynamically scoped
environments, macros, destructuring, and access to host modules.

A program is a sequence of parenthesized expressions:

	(defn fact (n)
	    (if (<= n 1) 1 (* n (fact (- n 1)))))
	(print (fact 10))

Atoms are literals (integers of any size, floats, strings, true and false)
and names. Names made of letters, digits, and underscores are identifiers and
evaluate to their bindings; a dotted identifier such as os.path.join reaches
into members of the value bound to its longest bound prefix. Other atoms,
like + or 'x, evaluate to their bindings if they have any and otherwise to
symbols; 'x is the symbol x.

Lists evaluate as special forms when their head names one, and otherwise as
calls. The special forms are if, let, do, def, defn, defmacro, macroexpand,
quote (also written '), dot (.), pyimport, pyimport_from, call, and, or, in,
match, filter, map, hash (#), dollar ($), and comment. A & before the last
argument of a call or of do, and, or or splices the elements of that list
into place.

Function calls create an environment whose parent is the caller's
environment and which falls back to the environment in which the function
was defined. Names are therefore resolved dynamically first:

	(defn show () (print x))
	(defn caller (x) (show))
	(caller 3)

prints 3. Lookups that miss every environment then consult the builtin
functions, such as + and print, and finally the intrinsics, such as len and
None.

Evaluation does not recurse on the Go stack. The Interpreter keeps an
explicit stack of frames, so deeply recursive programs are limited only by
memory, and on failure the frames active at the point of the error are
available from Interpreter.Failure and Interpreter.RenderActiveFrames.

To embed the interpreter, create one with NewInterpreter and evaluate source
with EvaluateSource or EvaluateReader. Go functions become callable by
wrapping them with NewBuiltin and binding them into Interpreter.Root, or by
grouping them into a Module with NewModule and registering it with
RegisterModule, which makes it available to pyimport. The packages under
hostext provide such modules.
*/
package lispy

// Version is the interpreter version.
const Version = "1"
