package cli

import "fmt"

type MigrateUpCmd struct{}

func (c *MigrateUpCmd) Run(ctx *Context) error {
	if err := ctx.Migrator.Up(); err != nil {
		return err
	}
	return printVersion(ctx)
}

type MigrateDownCmd struct {
	Yes bool `help:"Confirm dropping every table." short:"y"`
}

func (c *MigrateDownCmd) Run(ctx *Context) error {
	if !c.Yes {
		return fmt.Errorf("refusing to roll back without --yes")
	}
	if err := ctx.Migrator.Down(); err != nil {
		return err
	}
	return printVersion(ctx)
}

type MigrateVersionCmd struct{}

func (c *MigrateVersionCmd) Run(ctx *Context) error {
	return printVersion(ctx)
}

func printVersion(ctx *Context) error {
	v, dirty, err := ctx.Migrator.Version()
	if err != nil {
		return err
	}
	if v == 0 {
		fmt.Fprintln(ctx.Out, "schema version: none")
		return nil
	}
	fmt.Fprintf(ctx.Out, "schema version: %d", v)
	if dirty {
		fmt.Fprint(ctx.Out, " (dirty)")
	}
	fmt.Fprintln(ctx.Out)
	return nil
}
