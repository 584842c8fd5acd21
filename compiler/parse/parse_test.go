package parse

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shadelang/shade/compiler/ir"
)

func TestParseProgram(t *testing.T) {
	text := []byte(`
# fill with texture plus a constant
set-const c0 = (1, 1, 1, 1)
def-var t0/2d

texld r1 = s0[t0]
r2 = r1 + c0
mov oC0 = r2
`)

	prog, err := Parse(context.Background(), text)
	require.NoError(t, err)
	require.Len(t, prog, 5)

	require.Equal(t, &ir.SetConst{Slot: 0, Val: ir.Vec4{1, 1, 1, 1}}, prog[0])
	require.Equal(t, &ir.DefVar{Kind: ir.Tex2d, Dst: ir.Reg{Kind: ir.Texture, Num: 0}}, prog[1])
	require.Equal(t, &ir.TexLoad{
		Dst:     ir.Reg{Kind: ir.Temp, Num: 1},
		Sampler: ir.Reg{Kind: ir.SamplerState, Num: 0},
		Tex:     ir.Reg{Kind: ir.Texture, Num: 0},
	}, prog[2])
	require.Equal(t, &ir.BinaryOp{
		Op:   ir.Add,
		Dst:  ir.Reg{Kind: ir.Temp, Num: 2},
		Src1: ir.Reg{Kind: ir.Temp, Num: 1},
		Src2: ir.Reg{Kind: ir.Const, Num: 0},
	}, prog[3])
	require.Equal(t, &ir.Mov{
		Dst: ir.Reg{Kind: ir.ColorOut, Num: 0},
		Src: ir.Reg{Kind: ir.Temp, Num: 2},
	}, prog[4])
}

func TestParseMatchesRendering(t *testing.T) {
	for _, line := range []string{
		"set-const c0 = (1, 1, 1, 1)",
		"set-const c2 = (0.5, 0, 0.25, 1)",
		"def-var t0/2d",
		"def-var r1/cube",
		"def-var r2/volume",
		"def-var r3/unknown",
		"texld r1 = s0[t0]",
		"r2 = r1 + c0",
		"r2 = v0 * r1",
		"r1 = rcp r0",
		"mov oC0 = r2",
		"(r3) mov oC0 = r2",
	} {
		x, err := ParseLine(line)
		require.NoError(t, err, "%s", line)
		require.Equal(t, line, x.String())
	}
}

func TestParseUnary(t *testing.T) {
	x, err := ParseLine("r1 = rcp r0")
	require.NoError(t, err)

	require.Equal(t, &ir.UnaryOp{
		Op:  ir.Rcp,
		Dst: ir.Reg{Kind: ir.Temp, Num: 1},
		Src: ir.Reg{Kind: ir.Temp, Num: 0},
	}, x)
}

func TestParsePredicate(t *testing.T) {
	x, err := ParseLine("(r3) mov oC0 = r2")
	require.NoError(t, err)

	p := x.Predicate()
	require.NotNil(t, p)
	require.Equal(t, ir.Reg{Kind: ir.Temp, Num: 3}, *p)
}

func TestParseErrors(t *testing.T) {
	for _, tc := range []struct {
		line string
		msg  string
	}{
		{"set-const r0 = (1, 1, 1, 1)", "not a const register"},
		{"set-const c0 = (1, 1, 1)", "expected 4 components"},
		{"def-var t0/flat", "unknown texture kind"},
		{"texld r1 = s0 t0", "expected sampler[tex]"},
		{"r2 = r1 - r0", "unknown operation"},
		{"mov x0 = r2", "bad register"},
		{"(r3 mov oC0 = r2", "unterminated predicate"},
		{"bogus", "unrecognized instruction"},
	} {
		_, err := ParseLine(tc.line)
		require.Error(t, err, "%s", tc.line)
		require.Contains(t, err.Error(), tc.msg, "%s", tc.line)
	}
}

func TestParseLineNumber(t *testing.T) {
	_, err := Parse(context.Background(), []byte("mov oC0 = r0\nbogus line\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "line 2")
}
