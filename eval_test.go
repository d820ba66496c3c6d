package lispy_test

import (
	"bytes"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/zephyrtronium/lispy"
	_ "github.com/zephyrtronium/lispy/hostext/json"
	"github.com/zephyrtronium/lispy/testutils"
)

// TestForms tests the special forms.
func TestForms(t *testing.T) {
	cases := map[string]map[string]testutils.SourceTestCase{
		"if": {
			"True":       {Source: `(if (= 0 (- 1 1)) 1 -1)`, Pass: testutils.PassEqual(1)},
			"False":      {Source: `(if (list) 1 -1)`, Pass: testutils.PassEqual(-1)},
			"Lazy":       {Source: `(if true 1 (undefined_if_branch))`, Pass: testutils.PassEqual(1)},
			"Arity":      {Source: `(if 1 2)`, Pass: testutils.PassKind(lispy.SyntaxErrorKind)},
			"TooMany":    {Source: `(if 1 2 3 4)`, Pass: testutils.PassKind(lispy.SyntaxErrorKind)},
			"NilIsFalse": {Source: `(if None 1 2)`, Pass: testutils.PassEqual(2)},
		},
		"let": {
			"Pairs":       {Source: `(let (x 1 y 3) (+ x y))`, Pass: testutils.PassEqual(4)},
			"Sequential":  {Source: `(let (x 1 y (+ x 1)) y)`, Pass: testutils.PassEqual(2)},
			"Destructure": {Source: `(let ((a b) (list 1 2)) (- a b))`, Pass: testutils.PassEqual(-1)},
			"Nested":      {Source: `(let ((a (b c)) (list 1 (list 2 3))) (+ a b c))`, Pass: testutils.PassEqual(6)},
			"Mismatch":    {Source: `(let ((a b c) (list 1)) 3)`, Pass: testutils.PassKind(lispy.RuntimeErrorKind)},
			"NotList":     {Source: `(let ((a) 1) a)`, Pass: testutils.PassKind(lispy.RuntimeErrorKind)},
			"Odd":         {Source: `(let (x) x)`, Pass: testutils.PassKind(lispy.SyntaxErrorKind)},
			"BadName":     {Source: `(let (1 2) 3)`, Pass: testutils.PassKind(lispy.SyntaxErrorKind)},
			"Scoped":      {Source: `(do (let (let_scoped 1) let_scoped) let_scoped)`, Pass: testutils.PassName("let_scoped")},
		},
		"do": {
			"Last":      {Source: `(do (+ 1 1) (- 1 1))`, Pass: testutils.PassEqual(0)},
			"Empty":     {Source: `(do)`, Pass: testutils.PassEqual(nil)},
			"Defines":   {Source: `(do (defn do_inc (x) (+ x 1)) (do_inc 1))`, Pass: testutils.PassEqual(2)},
			"Splice":    {Source: `(do 3 & (list (+ 1 1) (- 1 1)))`, Pass: testutils.PassEqual(0)},
			"SpliceNil": {Source: `(do 3 & (list))`, Pass: testutils.PassEqual(3)},
			"NotList":   {Source: `(do 1 & 2)`, Pass: testutils.PassKind(lispy.RuntimeErrorKind)},
			"Misplaced": {Source: `(do & (list 1) 2)`, Pass: testutils.PassKind(lispy.SyntaxErrorKind)},
		},
		"def": {
			"Pairs":   {Source: `(def def_x 1 def_y (+ def_x 1))`, Pass: testutils.PassEqual(2)},
			"Visible": {Source: `(do (def def_z 3) (+ def_z def_z))`, Pass: testutils.PassEqual(6)},
			"Empty":   {Source: `(def)`, Pass: testutils.PassEqual(nil)},
			"Odd":     {Source: `(def def_w)`, Pass: testutils.PassKind(lispy.SyntaxErrorKind)},
			"BadName": {Source: `(def "x" 1)`, Pass: testutils.PassKind(lispy.SyntaxErrorKind)},
			"Partial": {Source: `(do (def def_p 1 def_q (undefined_def)) def_p)`, Pass: testutils.PassName("undefined_def")},
		},
		"defn": {
			"Call":      {Source: `(do (defn double (x) (+ x x)) (double 2))`, Pass: testutils.PassEqual(4)},
			"Returns":   {Source: `(defn defn_ret (x) x)`, Pass: testutils.PassType("function")},
			"Varargs":   {Source: `(do (defn sum (& args) (+ &args)) (sum 1 2 3 4))`, Pass: testutils.PassEqual(10)},
			"Spread":    {Source: `(do (defn defn_f (x y z) (+ x y z)) (defn_f 1 & (list 2 3)))`, Pass: testutils.PassEqual(6)},
			"Pattern":   {Source: `(do (defn defn_p ((a b) c) (list a b c)) (defn_p (list 1 2) 3))`, Pass: testutils.PassRepr("(1 2 3)")},
			"Missing":   {Source: `(do (defn defn_m (a b) a) (defn_m 1))`, Pass: testutils.PassEqual(1)},
			"BadParams": {Source: `(defn defn_b (1) 1)`, Pass: testutils.PassKind(lispy.SyntaxErrorKind)},
			"BadRest":   {Source: `(defn defn_r (& a b) 1)`, Pass: testutils.PassKind(lispy.SyntaxErrorKind)},
			"NotList":   {Source: `(defn defn_n x 1)`, Pass: testutils.PassKind(lispy.SyntaxErrorKind)},
		},
		"defmacro": {
			"Returns": {Source: `(defmacro defmacro_m (x) x)`, Pass: testutils.PassType("macro")},
			"Expand":  {Source: `(do (defmacro swap_args (f a b) (list f b a)) (swap_args - 1 10))`, Pass: testutils.PassEqual(9)},
			"Unevaluated": {
				Source: `(do (defmacro quoted_arg (x) (list 'quote x)) (quoted_arg (undefined_macro_arg)))`,
				Pass:   testutils.PassRepr("((undefined_macro_arg))"),
			},
			"Applied": {Source: `(do (defmacro defmacro_a (x) x) (map defmacro_a (list 1)))`, Pass: testutils.PassKind(lispy.RuntimeErrorKind)},
		},
		"macroexpand": {
			"Once": {
				Source: `(do (defmacro twice (x) (list 'do x x)) (macroexpand twice (print 1)))`,
				Pass:   testutils.PassRepr("(do (print 1) (print 1))"),
			},
			"NotMacro": {Source: `(macroexpand + 1)`, Pass: testutils.PassKind(lispy.RuntimeErrorKind)},
		},
		"quote": {
			"Literal":  {Source: `(quote + 1 ~(+ 1 1))`, Pass: testutils.PassEqual(lispy.NewList(lispy.Symbol("+"), 1, 2))},
			"Nested":   {Source: `(quote a (b ~(+ 1 2)) c)`, Pass: testutils.PassRepr("(a (b 3) c)")},
			"Empty":    {Source: `(quote)`, Pass: testutils.PassRepr("()")},
			"Tick":     {Source: `(' x y)`, Pass: testutils.PassRepr("(x y)")},
			"Strings":  {Source: `(quote "a b" 1.5)`, Pass: testutils.PassEqual(lispy.NewList("a b", 1.5))},
			"Outside":  {Source: `(+ ~(= 1 0) 2)`, Pass: testutils.PassKind(lispy.RuntimeErrorKind)},
			"Dangling": {Source: `(quote a ~)`, Pass: testutils.PassKind(lispy.RuntimeErrorKind)},
			"Fused":    {Source: `(let (x 5) (quote a ~x))`, Pass: testutils.PassRepr("(a 5)")},
			"FusedLit": {Source: `(quote (b ~1))`, Pass: testutils.PassRepr("((b 1))")},
			"FusedOut": {Source: `(let (x 5) (+ ~x 1))`, Pass: testutils.PassKind(lispy.RuntimeErrorKind)},
			"Symbol":   {Source: `'abc`, Pass: testutils.PassEqual(lispy.Symbol("abc"))},
		},
		"dot": {
			"Member":  {Source: `(. upper "abc")`, Pass: testutils.PassType("builtin")},
			"Call":    {Source: `((. strip " abc "))`, Pass: testutils.PassEqual("abc")},
			"Args":    {Source: `((. replace "aXa") "X" "b")`, Pass: testutils.PassEqual("aba")},
			"Missing": {Source: `(. no_such_member "abc")`, Pass: testutils.PassKind(lispy.HostErrorKind)},
			"BadName": {Source: `(. 1 "abc")`, Pass: testutils.PassKind(lispy.SyntaxErrorKind)},
		},
		"pyimport": {
			"Bind":    {Source: `(do (pyimport json) json)`, Pass: testutils.PassType("module")},
			"Member":  {Source: `(do (pyimport json) (json.loads "[1, 2, 3]"))`, Pass: testutils.PassRepr("(1 2 3)")},
			"From":    {Source: `(do (pyimport_from json dumps) (dumps (list 1 2)))`, Pass: testutils.PassEqual("[1, 2]")},
			"Unknown": {Source: `(pyimport no_such_module)`, Pass: testutils.PassKind(lispy.HostErrorKind)},
			"Absent":  {Source: `(pyimport_from json no_such_member)`, Pass: testutils.PassKind(lispy.HostErrorKind)},
			"Failing": {Source: `(do (pyimport json) (json.loads "[1"))`, Pass: testutils.PassKind(lispy.HostErrorKind)},
		},
		"call": {
			"Computed": {Source: `(call (. upper "abc"))`, Pass: testutils.PassEqual("ABC")},
			"Args":     {Source: `(call + 1 2)`, Pass: testutils.PassEqual(3)},
			"Spread":   {Source: `(call + 1 & (list 2 3))`, Pass: testutils.PassEqual(6)},
		},
		"and": {
			"Short": {
				Source: `(do (def and_calls (list)) (defn and_canary (x) (do ((. append and_calls) x) x)) (and (and_canary 0) (and_canary 1) (and_canary 2)) and_calls)`,
				Pass:   testutils.PassRepr("(0)"),
			},
			"False":  {Source: `(and 1 0 2)`, Pass: testutils.PassEqual(false)},
			"True":   {Source: `(and 1 2)`, Pass: testutils.PassEqual(true)},
			"Empty":  {Source: `(and)`, Pass: testutils.PassEqual(true)},
			"Splice": {Source: `(and 1 & (list 2 0 3))`, Pass: testutils.PassEqual(false)},
		},
		"or": {
			"Short": {
				Source: `(do (def or_calls (list)) (defn or_canary (x) (do ((. append or_calls) x) x)) (or (or_canary 0) (or_canary 1) (or_canary 2)) or_calls)`,
				Pass:   testutils.PassRepr("(0 1)"),
			},
			"True":   {Source: `(or 0 2)`, Pass: testutils.PassEqual(true)},
			"False":  {Source: `(or 0 "")`, Pass: testutils.PassEqual(false)},
			"Empty":  {Source: `(or)`, Pass: testutils.PassEqual(false)},
			"Splice": {Source: `(or 0 & (list 0 2 3))`, Pass: testutils.PassEqual(true)},
		},
		"in": {
			"List":      {Source: `(in 2 (list 1 2 3))`, Pass: testutils.PassEqual(true)},
			"NotInList": {Source: `(in 4 (list 1 2 3))`, Pass: testutils.PassEqual(false)},
			"String":    {Source: `(in "bc" "abcd")`, Pass: testutils.PassEqual(true)},
			"Dict":      {Source: `(in "a" (dict "a" 1))`, Pass: testutils.PassEqual(true)},
			"Number":    {Source: `(in 1 2)`, Pass: testutils.PassKind(lispy.HostErrorKind)},
		},
		"match": {
			"Arity":    {Source: `(match (list 1 2) ((a) 1) ((a b) 2) (a -1))`, Pass: testutils.PassEqual(2)},
			"Bind":     {Source: `(match (list 1 2) ((a b) (+ a b)))`, Pass: testutils.PassEqual(3)},
			"CatchAll": {Source: `(match 5 ((a) 1) (v (* v 2)))`, Pass: testutils.PassEqual(10)},
			"Rest":     {Source: `(match (list 1 2 3) ((h & t) t))`, Pass: testutils.PassRepr("(2 3)")},
			"Nested":   {Source: `(match (list 1 (list 2)) ((a (b c)) 0) ((a (b)) b))`, Pass: testutils.PassEqual(2)},
			"First":    {Source: `(match (list 1) ((a) 1) ((b) 2))`, Pass: testutils.PassEqual(1)},
			"None":     {Source: `(match (list 1 2) ((a) 1))`, Pass: testutils.PassKind(lispy.RuntimeErrorKind)},
			"BadArm":   {Source: `(match 1 (a))`, Pass: testutils.PassKind(lispy.SyntaxErrorKind)},
		},
		"filter": {
			"Even":  {Source: `(filter (defn even (x) (= 0 (% x 2))) (range 10))`, Pass: testutils.PassRepr("(0 2 4 6 8)")},
			"Empty": {Source: `(filter (# = 0 (% %0 2)) (list))`, Pass: testutils.PassRepr("()")},
			"Chars": {Source: `(filter (# != %0 "b") "abc")`, Pass: testutils.PassRepr("(a c)")},
			"Host":  {Source: `(filter bool (list 0 1 "" "a"))`, Pass: testutils.PassRepr("(1 a)")},
		},
		"map": {
			"Double":    {Source: `(map (defn double (x) (* 2 x)) (range 5))`, Pass: testutils.PassRepr("(0 2 4 6 8)")},
			"Builtin":   {Source: `(map str (list 1 2))`, Pass: testutils.PassEqual(lispy.NewList("1", "2"))},
			"NotIter":   {Source: `(map str 1)`, Pass: testutils.PassKind(lispy.HostErrorKind)},
			"Callee":    {Source: `(map 1 (list 1))`, Pass: testutils.PassKind(lispy.RuntimeErrorKind)},
			"EmptyLazy": {Source: `(map 1 (list))`, Pass: testutils.PassRepr("()")},
		},
		"hash": {
			"Anonymous": {Source: `((# * %0 2) 2)`, Pass: testutils.PassEqual(4)},
			"TwoArgs":   {Source: `((# - %1 %0) 1 10)`, Pass: testutils.PassEqual(9)},
			"Type":      {Source: `(# + 1 1)`, Pass: testutils.PassType("lambda")},
		},
		"dollar": {
			"Lookup":  {Source: `(let (dollar_x 5) ($ "dollar_x"))`, Pass: testutils.PassEqual(5)},
			"Symbol":  {Source: `(let (dollar_y 6) ($ 'dollar_y))`, Pass: testutils.PassEqual(6)},
			"Missing": {Source: `($ "undefined_dollar")`, Pass: testutils.PassName("undefined_dollar")},
			"NotName": {Source: `($ 1)`, Pass: testutils.PassKind(lispy.RuntimeErrorKind)},
		},
		"comment": {
			"Ignored": {Source: `(comment (undefined_comment) is never evaluated)`, Pass: testutils.PassEqual(nil)},
		},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			for name, s := range c {
				t.Run(name, s.TestFunc("TestForms/"+name))
			}
		})
	}
}

// TestEvaluation tests general evaluation rules.
func TestEvaluation(t *testing.T) {
	cases := map[string]testutils.SourceTestCase{
		"Add":            {Source: `(+ 1 1)`, Pass: testutils.PassEqual(2)},
		"Sub":            {Source: `(- 1 1)`, Pass: testutils.PassEqual(0)},
		"Div":            {Source: `(/ 2 1)`, Pass: testutils.PassEqual(2)},
		"Mul":            {Source: `(* 2 2)`, Pass: testutils.PassEqual(4)},
		"Chain":          {Source: `(< 1 2 3)`, Pass: testutils.PassEqual(true)},
		"Nested":         {Source: `(+ (+ 1 1) 1)`, Pass: testutils.PassEqual(3)},
		"Empty":          {Source: `()`, Pass: testutils.PassRepr("()")},
		"Atom":           {Source: `"abc"`, Pass: testutils.PassEqual("abc")},
		"Last":           {Source: `1 2 3`, Pass: testutils.PassEqual(3)},
		"Unbound":        {Source: `(+ undefined_x undefined_y)`, Pass: testutils.PassName("undefined_x")},
		"UnboundCallee":  {Source: `(undefined_fn 1)`, Pass: testutils.PassName("undefined_fn")},
		"OperatorCallee": {Source: `(=> 1)`, Pass: testutils.PassName("=>")},
		"NotCallable":    {Source: `(5 1)`, Pass: testutils.PassKind(lispy.RuntimeErrorKind)},
		"NilCallee":      {Source: `(None 1)`, Pass: testutils.PassKind(lispy.RuntimeErrorKind)},
		"HostError":      {Source: `(/ 1 0)`, Pass: testutils.PassKind(lispy.HostErrorKind)},
		"MisplacedRest":  {Source: `(+ 1 & 2 3)`, Pass: testutils.PassKind(lispy.SyntaxErrorKind)},
		"SpliceNotList":  {Source: `(+ 1 & 2)`, Pass: testutils.PassKind(lispy.RuntimeErrorKind)},
		"Unbalanced":     {Source: `(+ 1 2`, Pass: testutils.PassKind(lispy.SyntaxErrorKind)},
		"Dotted":         {Source: `(do (def dotted_s "abc") (dotted_s.upper))`, Pass: testutils.PassEqual("ABC")},
		"Apply":          {Source: `(apply + 1 2 3)`, Pass: testutils.PassEqual(6)},
		"ApplyUser":      {Source: `(do (defn apply_f (a b) (- a b)) (apply apply_f 5 2))`, Pass: testutils.PassEqual(3)},
		"Factorial": {
			Source: `(do (defn fact (x) (if (< x 2) 1 (* x (fact (- x 1))))) (fact 10))`,
			Pass:   testutils.PassEqual(3628800),
		},
		"DynamicScope": {
			Source: `(do (defn dynamic_f (x) (+ x dynamic_y)) (let (dynamic_y 1) (dynamic_f 2)))`,
			Pass:   testutils.PassEqual(3),
		},
		"DynamicFirst": {
			Source: `(do (def dynamic_z 10) (defn dynamic_g () dynamic_z) (let (dynamic_z 1) (dynamic_g)))`,
			Pass:   testutils.PassEqual(1),
		},
		"Closure": {
			Source: `(do (defn adder (n) (# + n %0)) ((adder 3) 4))`,
			Pass:   testutils.PassEqual(7),
		},
		"SelfRecursion": {
			Source: `(do (defn count_down (n) (if (= n 0) "done" (count_down (- n 1)))) (count_down 100))`,
			Pass:   testutils.PassEqual("done"),
		},
	}
	for name, c := range cases {
		t.Run(name, c.TestFunc("TestEvaluation/"+name))
	}
}

// TestDeepRecursion tests that recursion depth is not limited by the Go
// stack.
func TestDeepRecursion(t *testing.T) {
	in := lispy.NewInterpreter(false, nil)
	start := time.Now()
	r, err := in.EvaluateSource(`(defn deep (n) (if (= n 0) 0 (+ 1 (deep (- n 1))))) (deep 20000)`)
	if err != nil {
		t.Fatal(err)
	}
	if !lispy.Equal(r, 20000) {
		t.Errorf("deep recursion gave %s", lispy.Repr(r))
	}
	if d := time.Since(start); d > 10*time.Second {
		t.Errorf("deep recursion took %v", d)
	}
}

// TestIdempotence tests that evaluating pure expressions twice gives the same
// result.
func TestIdempotence(t *testing.T) {
	cases := map[string]string{
		"Arith":       `(+ 1 (* 2 3) (- 10 4))`,
		"Quote":       `(quote a (b ~(+ 1 2)))`,
		"Let":         `(let ((a b) (list 1 2)) (list b a))`,
		"Map":         `(map (# * %0 %0) (range 5))`,
		"Match":       `(match (list 1 2 3) ((a & r) r))`,
		"Macroexpand": `(do (defmacro idem_m (x) (list 'if x 1 2)) (macroexpand idem_m (= 1 1)))`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			in := testutils.Interpreter()
			a, err := in.EvaluateString(src, "TestIdempotence/"+name)
			if err != nil {
				t.Fatal(err)
			}
			b, err := in.EvaluateString(src, "TestIdempotence/"+name)
			if err != nil {
				t.Fatal(err)
			}
			if !lispy.Equal(a, b) {
				t.Errorf("%q gave %s, then %s", src, lispy.Repr(a), lispy.Repr(b))
			}
		})
	}
}

// TestNonTransactional tests that side effects before an error remain.
func TestNonTransactional(t *testing.T) {
	in := lispy.NewInterpreter(false, nil)
	_, err := in.EvaluateSource(`(def kept 1 broken (undefined_name) never 2)`)
	if lispy.KindOf(err) != lispy.NameNotFoundKind {
		t.Fatalf("wrong error: %v", err)
	}
	if v, ok := in.Root.Get("kept"); !ok || v != 1 {
		t.Errorf("kept is %s", lispy.Repr(v))
	}
	if in.Root.Contains("never") {
		t.Error("binding after the error happened")
	}
}

// TestRenderActiveFrames tests that failures record the frames which were
// active.
func TestRenderActiveFrames(t *testing.T) {
	in := lispy.NewInterpreter(false, nil)
	_, err := in.EvaluateString("(do\n  (+ 1 (undefined_frame 2)))", "frames.lispy")
	if err == nil {
		t.Fatal("no error")
	}
	e := err.(*lispy.Error)
	if len(e.Stack) != 3 {
		t.Fatalf("wrong number of frames: %#v", e.Stack)
	}
	s := in.RenderActiveFrames()
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("wrong number of lines in\n%s", s)
	}
	if !strings.Contains(lines[0], "(undefined_frame 2)") || !strings.Contains(lines[0], "frames.lispy:2") {
		t.Errorf("innermost frame is %q", lines[0])
	}
	if !strings.Contains(lines[2], "(do (...))") || !strings.Contains(lines[2], "frames.lispy:1") {
		t.Errorf("outermost frame is %q", lines[2])
	}
	if _, err := in.EvaluateSource("(+ 1 1)"); err != nil {
		t.Fatal(err)
	}
	if len(in.Failure()) != 3 {
		t.Error("success cleared the last failure")
	}
}

// TestFrameBindings tests that frames render their bindings.
func TestFrameBindings(t *testing.T) {
	in := lispy.NewInterpreter(false, nil)
	_, err := in.EvaluateSource(`(defn frame_f (a b) (undefined_in_body)) (frame_f 1 "two")`)
	if err == nil {
		t.Fatal("no error")
	}
	s := in.RenderActiveFrames()
	if !strings.Contains(s, "{a: 1, b: two}") {
		t.Errorf("frames do not show bindings:\n%s", s)
	}
}

// TestCall tests calling values from Go.
func TestCall(t *testing.T) {
	in := lispy.NewInterpreter(false, nil)
	f := in.MustEvaluate(`(defn call_f (x y) (- x y))`)
	r, err := in.Call(f, 10, 4)
	if err != nil {
		t.Fatal(err)
	}
	if r != 6 {
		t.Errorf("call_f gave %s", lispy.Repr(r))
	}
	r, err = in.Call(in.MustEvaluate(`+`), "a", "b")
	if err != nil {
		t.Fatal(err)
	}
	if r != "ab" {
		t.Errorf("+ gave %s", lispy.Repr(r))
	}
	m := in.MustEvaluate(`(defmacro call_m (x) x)`)
	if _, err := in.Call(m, 1); lispy.KindOf(err) != lispy.RuntimeErrorKind {
		t.Errorf("calling a macro gave %v", err)
	}
	if _, err := in.Call(1); lispy.KindOf(err) != lispy.RuntimeErrorKind {
		t.Errorf("calling a number gave %v", err)
	}
}

// TestBaseEnv tests that an interpreter sees bindings of its base
// environment.
func TestBaseEnv(t *testing.T) {
	base := lispy.NewEnv(nil)
	base.Bind("from_base", 7)
	in := lispy.NewInterpreter(false, base)
	if r := in.MustEvaluate(`(* from_base 2)`); r != 14 {
		t.Errorf("got %s", lispy.Repr(r))
	}
	in.MustEvaluate(`(def from_root 1)`)
	if base.Contains("from_root") {
		t.Error("def leaked into the base environment")
	}
}

// TestStdlibOptional tests that the standard library loads only on request.
func TestStdlibOptional(t *testing.T) {
	in := lispy.NewInterpreter(false, nil)
	if in.Root.Contains("inc") {
		t.Error("inc defined without the standard library")
	}
	in = lispy.NewInterpreter(true, nil)
	if !in.Root.Contains("inc") {
		t.Error("inc not defined with the standard library")
	}
}

// TestTrace tests that the tracer sees each step.
func TestTrace(t *testing.T) {
	in := lispy.NewInterpreter(false, nil)
	var b bytes.Buffer
	in.SetTracer(lispy.LogTracer(log.New(&b, "", 0)))
	in.MustEvaluate(`(+ 1 (* 2 3))`)
	want := "(+ 1 (...))\n  +\n  1\n  (* 2 3)\n    *\n    2\n    3\n"
	if b.String() != want {
		t.Errorf("wrong trace:\n%s\nwanted:\n%s", b.String(), want)
	}
	b.Reset()
	in.SetTracer(nil)
	in.MustEvaluate(`(+ 1 1)`)
	if b.Len() != 0 {
		t.Errorf("traced after removing the tracer: %q", b.String())
	}
}

// TestDebugger tests that a debugger can step through evaluation.
func TestDebugger(t *testing.T) {
	in := lispy.NewInterpreter(false, nil)
	d := lispy.NewDebugger()
	in.SetTracer(d)
	done := make(chan lispy.Value)
	go func() {
		done <- in.MustEvaluate(`(+ 1 2)`)
	}()
	var steps []string
	for {
		select {
		case s := <-d.Steps():
			steps = append(steps, lispy.Repr(s.Expr))
			s.Continue()
		case r := <-done:
			if r != 3 {
				t.Errorf("result is %s", lispy.Repr(r))
			}
			if strings.Join(steps, " ") != "(+ 1 2) + 1 2" {
				t.Errorf("wrong steps: %q", steps)
			}
			return
		}
	}
}

func BenchmarkFactorial(b *testing.B) {
	in := lispy.NewInterpreter(false, nil)
	in.MustEvaluate(`(defn fact (x) (if (< x 2) 1 (* x (fact (- x 1)))))`)
	exprs, err := lispy.ParseString(`(fact 20)`, "BenchmarkFactorial")
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		in.Evaluate(exprs[0], in.Root)
	}
}
