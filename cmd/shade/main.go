package main

import (
	"context"
	"fmt"
	"os"

	"nikand.dev/go/cli"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/shadelang/shade/compiler"
	"github.com/shadelang/shade/compiler/interp"
	"github.com/shadelang/shade/compiler/ir"
	"github.com/shadelang/shade/compiler/parse"
)

func main() {
	printCmd := &cli.Command{
		Name:   "print",
		Action: printAct,
		Args:   cli.Args{},
	}

	checkCmd := &cli.Command{
		Name:   "check",
		Action: checkAct,
		Args:   cli.Args{},
	}

	compileCmd := &cli.Command{
		Name:   "compile",
		Action: compileAct,
		Args:   cli.Args{},
	}

	runCmd := &cli.Command{
		Name:   "run",
		Action: runAct,
		Args:   cli.Args{},
	}

	app := &cli.Command{
		Name:        "shade",
		Description: "shade is a tool for compiling and inspecting pixel shader programs",
		Commands: []*cli.Command{
			printCmd,
			checkCmd,
			compileCmd,
			runCmd,
		},
	}

	cli.RunAndExit(app, os.Args, os.Environ())
}

func printAct(c *cli.Command) (err error) {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	for _, a := range c.Args {
		prog, err := parseFile(ctx, a)
		if err != nil {
			return errors.Wrap(err, "parse %v", a)
		}

		fmt.Printf("%s", ir.Listing(prog))
	}

	return nil
}

func checkAct(c *cli.Command) (err error) {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	for _, a := range c.Args {
		prog, err := parseFile(ctx, a)
		if err != nil {
			return errors.Wrap(err, "parse %v", a)
		}

		diags := ir.Check(prog)

		for _, d := range diags {
			fmt.Printf("%v: insn %d: %v\n", a, d.Insn, d.Err)
		}

		if len(diags) != 0 {
			return errors.New("%v: %d problems", a, len(diags))
		}
	}

	return nil
}

func compileAct(c *cli.Command) (err error) {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	for _, a := range c.Args {
		obj, err := compiler.CompileFile(ctx, a)
		if err != nil {
			return errors.Wrap(err, "compile %v", a)
		}

		fmt.Printf("%s", obj)
	}

	return nil
}

func runAct(c *cli.Command) (err error) {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	for _, a := range c.Args {
		prog, err := parseFile(ctx, a)
		if err != nil {
			return errors.Wrap(err, "parse %v", a)
		}

		m := interp.New()
		m.Sampler = func(sampler, tex uint) ir.Vec4 {
			return ir.Vec4{0.5, 0.5, 0.5, 1}
		}

		err = m.Run(ctx, prog)
		if err != nil {
			return errors.Wrap(err, "run %v", a)
		}

		u := ir.NewUses()
		u.Collect(prog)

		if s := u.Written[ir.ColorOut]; s != nil {
			s.Range(func(n uint) bool {
				v, _ := m.Reg(ir.Reg{Kind: ir.ColorOut, Num: n})

				fmt.Printf("oC%d = %v\n", n, v)

				return true
			})
		}
	}

	return nil
}

func parseFile(ctx context.Context, name string) ([]ir.Instruction, error) {
	text, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, "read file")
	}

	return parse.Parse(ctx, text)
}
