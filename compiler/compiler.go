package compiler

import (
	"context"
	"os"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/shadelang/shade/compiler/back"
	"github.com/shadelang/shade/compiler/ir"
	"github.com/shadelang/shade/compiler/parse"
)

func CompileFile(ctx context.Context, name string) (obj []byte, err error) {
	text, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, "read file")
	}

	tlog.SpanFromContext(ctx).Printw("read file", "size", len(text), "name", name)

	return Compile(ctx, name, text)
}

func Compile(ctx context.Context, name string, text []byte) (obj []byte, err error) {
	prog, err := parse.Parse(ctx, text)
	if err != nil {
		return nil, errors.Wrap(err, "parse text")
	}

	tr := tlog.SpanFromContext(ctx)

	diags := ir.Check(prog)

	for _, d := range diags {
		tr.Printw("problem", "insn", d.Insn, "err", d.Err, "from", d.From)
	}

	if len(diags) != 0 {
		return nil, errors.New("program has %d problems", len(diags))
	}

	var c back.Compiler

	obj, err = c.CompileProgram(ctx, nil, name, prog)
	if err != nil {
		return nil, errors.Wrap(err, "compile")
	}

	return obj, nil
}
