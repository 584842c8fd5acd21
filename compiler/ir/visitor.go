package ir

import "fmt"

type (
	// Visitor has one method per instruction variant. Accept calls
	// exactly the method matching the receiver's variant, once,
	// passing the receiver. Adding a pass means implementing this
	// interface; adding a variant means extending it and every
	// implementation.
	Visitor interface {
		VisitSetConst(x *SetConst)
		VisitDefVar(x *DefVar)
		VisitTexLoad(x *TexLoad)
		VisitBinaryOp(x *BinaryOp)
		VisitUnaryOp(x *UnaryOp)
		VisitMov(x *Mov)
	}

	// Printer renders each visited instruction as one listing line.
	Printer struct {
		b []byte
	}
)

// Listing renders the whole program, one line per instruction.
func Listing(prog []Instruction) []byte {
	var p Printer

	for _, x := range prog {
		x.Accept(&p)
	}

	return p.Bytes()
}

func (p *Printer) Bytes() []byte { return p.b }

func (p *Printer) line(x Instruction) {
	p.b = fmt.Appendf(p.b, "%v\n", x)
}

func (p *Printer) VisitSetConst(x *SetConst) { p.line(x) }

func (p *Printer) VisitDefVar(x *DefVar) { p.line(x) }

func (p *Printer) VisitTexLoad(x *TexLoad) { p.line(x) }

func (p *Printer) VisitBinaryOp(x *BinaryOp) { p.line(x) }

func (p *Printer) VisitUnaryOp(x *UnaryOp) { p.line(x) }

func (p *Printer) VisitMov(x *Mov) { p.line(x) }
