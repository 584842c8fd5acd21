// Package parse reads the line-oriented shader assembly syntax.
//
// The syntax matches the diagnostic rendering of ir instructions:
//
//	set-const c0 = (1, 1, 1, 1)
//	def-var t0/2d
//	texld r1 = s0[t0]
//	r2 = r1 + c0
//	mov oC0 = r2
//
// A `(reg)` prefix sets the predicate register, `#` starts a comment.
// This is a development format; the binary shader bytecode is parsed
// elsewhere.
package parse

import (
	"context"
	"strconv"
	"strings"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/shadelang/shade/compiler/ir"
)

// Parse parses a whole program, one instruction per line.
func Parse(ctx context.Context, text []byte) (prog []ir.Instruction, err error) {
	tr := tlog.SpanFromContext(ctx)

	for i, line := range strings.Split(string(text), "\n") {
		if j := strings.IndexByte(line, '#'); j >= 0 {
			line = line[:j]
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		x, err := ParseLine(line)
		if err != nil {
			return nil, errors.Wrap(err, "line %d", i+1)
		}

		prog = append(prog, x)
	}

	tr.Printw("parsed program", "insns", len(prog))

	return prog, nil
}

// ParseLine parses a single instruction.
func ParseLine(line string) (x ir.Instruction, err error) {
	line = strings.TrimSpace(line)

	var pred *ir.Reg

	if strings.HasPrefix(line, "(") {
		p, rest, ok := strings.Cut(line[1:], ")")
		if !ok {
			return nil, errors.New("unterminated predicate")
		}

		r, err := parseReg(strings.TrimSpace(p))
		if err != nil {
			return nil, errors.Wrap(err, "predicate")
		}

		pred = &r
		line = strings.TrimSpace(rest)
	}

	switch {
	case strings.HasPrefix(line, "set-const"):
		x, err = parseSetConst(strings.TrimSpace(line[len("set-const"):]))
	case strings.HasPrefix(line, "def-var"):
		x, err = parseDefVar(strings.TrimSpace(line[len("def-var"):]))
	case strings.HasPrefix(line, "texld"):
		x, err = parseTexLoad(strings.TrimSpace(line[len("texld"):]))
	case strings.HasPrefix(line, "mov"):
		x, err = parseMov(strings.TrimSpace(line[len("mov"):]))
	default:
		x, err = parseArith(line)
	}

	if err != nil {
		return nil, err
	}

	if pred != nil {
		x.SetPredicate(*pred)
	}

	return x, nil
}

func parseSetConst(s string) (ir.Instruction, error) {
	l, r, ok := strings.Cut(s, "=")
	if !ok {
		return nil, errors.New("set-const: expected =")
	}

	reg, err := parseReg(strings.TrimSpace(l))
	if err != nil {
		return nil, errors.Wrap(err, "set-const")
	}

	if reg.Kind != ir.Const {
		return nil, errors.New("set-const: %v is not a const register", reg)
	}

	val, err := parseVec(strings.TrimSpace(r))
	if err != nil {
		return nil, errors.Wrap(err, "set-const")
	}

	return &ir.SetConst{Slot: reg.Num, Val: val}, nil
}

func parseDefVar(s string) (ir.Instruction, error) {
	l, r, ok := strings.Cut(s, "/")
	if !ok {
		return nil, errors.New("def-var: expected reg/kind")
	}

	reg, err := parseReg(strings.TrimSpace(l))
	if err != nil {
		return nil, errors.Wrap(err, "def-var")
	}

	var kind ir.TextureKind

	switch strings.TrimSpace(r) {
	case "unknown":
		kind = ir.TexUnknown
	case "2d":
		kind = ir.Tex2d
	case "cube":
		kind = ir.TexCube
	case "volume":
		kind = ir.TexVolume
	default:
		return nil, errors.New("def-var: unknown texture kind: %v", strings.TrimSpace(r))
	}

	return &ir.DefVar{Kind: kind, Dst: reg}, nil
}

func parseTexLoad(s string) (ir.Instruction, error) {
	l, r, ok := strings.Cut(s, "=")
	if !ok {
		return nil, errors.New("texld: expected =")
	}

	dst, err := parseReg(strings.TrimSpace(l))
	if err != nil {
		return nil, errors.Wrap(err, "texld dest")
	}

	r = strings.TrimSpace(r)

	sam, rest, ok := strings.Cut(r, "[")
	if !ok || !strings.HasSuffix(rest, "]") {
		return nil, errors.New("texld: expected sampler[tex]")
	}

	sampler, err := parseReg(strings.TrimSpace(sam))
	if err != nil {
		return nil, errors.Wrap(err, "texld sampler")
	}

	tex, err := parseReg(strings.TrimSpace(strings.TrimSuffix(rest, "]")))
	if err != nil {
		return nil, errors.Wrap(err, "texld tex")
	}

	return &ir.TexLoad{Dst: dst, Sampler: sampler, Tex: tex}, nil
}

func parseMov(s string) (ir.Instruction, error) {
	l, r, ok := strings.Cut(s, "=")
	if !ok {
		return nil, errors.New("mov: expected =")
	}

	dst, err := parseReg(strings.TrimSpace(l))
	if err != nil {
		return nil, errors.Wrap(err, "mov dest")
	}

	src, err := parseReg(strings.TrimSpace(r))
	if err != nil {
		return nil, errors.Wrap(err, "mov src")
	}

	return &ir.Mov{Dst: dst, Src: src}, nil
}

func parseArith(s string) (ir.Instruction, error) {
	l, r, ok := strings.Cut(s, "=")
	if !ok {
		return nil, errors.New("unrecognized instruction: %v", s)
	}

	dst, err := parseReg(strings.TrimSpace(l))
	if err != nil {
		return nil, errors.Wrap(err, "dest")
	}

	f := strings.Fields(strings.TrimSpace(r))

	if len(f) == 2 && f[0] == "rcp" {
		src, err := parseReg(f[1])
		if err != nil {
			return nil, errors.Wrap(err, "src")
		}

		return &ir.UnaryOp{Op: ir.Rcp, Dst: dst, Src: src}, nil
	}

	if len(f) != 3 {
		return nil, errors.New("expected src1 op src2: %v", strings.TrimSpace(r))
	}

	src1, err := parseReg(f[0])
	if err != nil {
		return nil, errors.Wrap(err, "src1")
	}

	src2, err := parseReg(f[2])
	if err != nil {
		return nil, errors.Wrap(err, "src2")
	}

	var op ir.BinOp

	switch f[1] {
	case "+":
		op = ir.Add
	case "*":
		op = ir.Mul
	default:
		return nil, errors.New("unknown operation: %v", f[1])
	}

	return &ir.BinaryOp{Op: op, Dst: dst, Src1: src1, Src2: src2}, nil
}

func parseReg(s string) (r ir.Reg, err error) {
	i := 0

	for i < len(s) && (s[i] < '0' || s[i] > '9') {
		i++
	}

	pfx, num := s[:i], s[i:]

	switch pfx {
	case "r":
		r.Kind = ir.Temp
	case "v":
		r.Kind = ir.Input
	case "c":
		r.Kind = ir.Const
	case "s":
		r.Kind = ir.SamplerState
	case "t":
		r.Kind = ir.Texture
	case "oC":
		r.Kind = ir.ColorOut
	default:
		return r, errors.New("bad register: %v", s)
	}

	n, err := strconv.ParseUint(num, 10, 32)
	if err != nil {
		return r, errors.New("bad register number: %v", s)
	}

	r.Num = uint(n)

	return r, nil
}

func parseVec(s string) (v ir.Vec4, err error) {
	if !strings.HasPrefix(s, "(") || !strings.HasSuffix(s, ")") {
		return v, errors.New("expected (x, y, z, w): %v", s)
	}

	f := strings.Split(s[1:len(s)-1], ",")
	if len(f) != 4 {
		return v, errors.New("expected 4 components, got %d", len(f))
	}

	for i, c := range f {
		x, err := strconv.ParseFloat(strings.TrimSpace(c), 32)
		if err != nil {
			return v, errors.New("bad component %d: %v", i, strings.TrimSpace(c))
		}

		v[i] = float32(x)
	}

	return v, nil
}
