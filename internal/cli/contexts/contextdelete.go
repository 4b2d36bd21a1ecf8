package contexts

import (
	"fmt"
	"strings"

	"github.com/julianstephens/tempo/internal/cli"
	"github.com/julianstephens/tempo/internal/models"
)

type ContextDeleteCmd struct {
	Ref string `arg:"" help:"Context name or ID to delete."`
}

func (c *ContextDeleteCmd) Run(ctx *cli.Context) error {
	ids, err := ctx.ResolveContexts([]string{c.Ref})
	if err != nil || len(ids) == 0 {
		return fmt.Errorf("failed to find context %q", c.Ref)
	}
	context, err := ctx.Store.GetContext(ids[0])
	if err != nil {
		return err
	}

	if err := ctx.Store.DeleteContext(context.ID); err != nil {
		return fmt.Errorf("failed to delete context: %w", err)
	}

	fmt.Printf("Deleted context: %s (ID: %s)\n", context.Name, context.ID)
	return nil
}

type ContextRestoreCmd struct {
	Ref string `arg:"" help:"Deleted context name or ID to restore."`
}

func (c *ContextRestoreCmd) Run(ctx *cli.Context) error {
	context, err := findDeleted(ctx, c.Ref)
	if err != nil {
		return err
	}
	if err := ctx.Store.RestoreContext(context.ID); err != nil {
		return fmt.Errorf("failed to restore context: %w", err)
	}

	fmt.Printf("Restored context: %s (ID: %s)\n", context.Name, context.ID)
	return nil
}

// findDeleted matches ref against IDs first, then names, of deleted contexts.
// Among several deleted contexts with the same name the most recently deleted wins.
func findDeleted(ctx *cli.Context, ref string) (models.Context, error) {
	all, err := ctx.Store.GetAllContextsIncludingDeleted()
	if err != nil {
		return models.Context{}, err
	}

	var match *models.Context
	for i := range all {
		context := all[i]
		if context.ID == ref {
			return context, nil
		}
		if context.DeletedAt == nil || !strings.EqualFold(context.Name, ref) {
			continue
		}
		if match == nil || *context.DeletedAt > *match.DeletedAt {
			match = &all[i]
		}
	}
	if match == nil {
		return models.Context{}, fmt.Errorf("no deleted context named %q", ref)
	}
	return *match, nil
}
