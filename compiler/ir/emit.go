package ir

import (
	"context"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"
)

// CodeGen is the backend context the two emission phases call into.
// It belongs to exactly one compilation; emission is sequential and
// the context is not safe for concurrent programs.
type CodeGen interface {
	// Header phase.
	DefineConst(slot uint, val Vec4)
	DefineVar(kind TextureKind, dst Reg)

	// Body phase. LoadValue pushes a value, EmitBinary combines the
	// two most recently loaded, StoreValue consumes the current one.
	LoadValue(src Reg)
	StoreValue(dst Reg)
	EmitBinary(op BinOp)
	SampleTexture(sampler, tex uint)
}

// Emit lowers the program into g: every header hook in program order,
// then every body hook in program order. Declarations are complete
// before the first body call. The first failure aborts the pass.
func Emit(ctx context.Context, prog []Instruction, g CodeGen) (err error) {
	tr, _ := tlog.SpawnFromContextAndWrap(ctx, "emit program", "insns", len(prog))
	defer tr.Finish("err", &err)

	for i, x := range prog {
		err = x.EmitHeader(g)
		if err != nil {
			return errors.Wrap(err, "header: insn %d", i)
		}
	}

	for i, x := range prog {
		err = x.EmitBody(g)
		if err != nil {
			return errors.Wrap(err, "body: insn %d", i)
		}
	}

	return nil
}
