package ir

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type spyVisitor struct {
	method string
	got    Instruction
	calls  int
}

func (s *spyVisitor) hit(method string, x Instruction) {
	s.method = method
	s.got = x
	s.calls++
}

func (s *spyVisitor) VisitSetConst(x *SetConst) { s.hit("SetConst", x) }

func (s *spyVisitor) VisitDefVar(x *DefVar) { s.hit("DefVar", x) }

func (s *spyVisitor) VisitTexLoad(x *TexLoad) { s.hit("TexLoad", x) }

func (s *spyVisitor) VisitBinaryOp(x *BinaryOp) { s.hit("BinaryOp", x) }

func (s *spyVisitor) VisitUnaryOp(x *UnaryOp) { s.hit("UnaryOp", x) }

func (s *spyVisitor) VisitMov(x *Mov) { s.hit("Mov", x) }

func TestAcceptDispatch(t *testing.T) {
	for _, tc := range []struct {
		x      Instruction
		method string
	}{
		{&SetConst{}, "SetConst"},
		{&DefVar{}, "DefVar"},
		{&TexLoad{}, "TexLoad"},
		{&BinaryOp{}, "BinaryOp"},
		{&UnaryOp{}, "UnaryOp"},
		{&Mov{}, "Mov"},
	} {
		s := &spyVisitor{}

		tc.x.Accept(s)

		require.Equal(t, 1, s.calls, "%s", tc.method)
		require.Equal(t, tc.method, s.method)
		require.Same(t, tc.x, s.got)
	}
}

func TestListing(t *testing.T) {
	prog := []Instruction{
		&SetConst{Slot: 0, Val: Vec4{1, 1, 1, 1}},
		&DefVar{Kind: Tex2d, Dst: Reg{Kind: Texture, Num: 0}},
		&TexLoad{Dst: Reg{Kind: Temp, Num: 1}, Sampler: Reg{Kind: SamplerState, Num: 0}, Tex: Reg{Kind: Texture, Num: 0}},
		&BinaryOp{Op: Add, Dst: Reg{Kind: Temp, Num: 2}, Src1: Reg{Kind: Temp, Num: 1}, Src2: Reg{Kind: Const, Num: 0}},
		&Mov{Dst: Reg{Kind: ColorOut, Num: 0}, Src: Reg{Kind: Temp, Num: 2}},
	}

	want := `set-const c0 = (1, 1, 1, 1)
def-var t0/2d
texld r1 = s0[t0]
r2 = r1 + c0
mov oC0 = r2
`

	require.Equal(t, want, string(Listing(prog)))
	require.Equal(t, want, string(Listing(prog)))
}
