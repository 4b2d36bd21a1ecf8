package contexts

import (
	"fmt"

	"github.com/julianstephens/tempo/internal/cli"
)

type ContextListCmd struct {
	All     bool `short:"a" help:"Include deleted contexts."`
	ShowIDs bool `help:"Show context IDs." name:"show-ids"`
}

func (c *ContextListCmd) Run(ctx *cli.Context) error {
	load := ctx.Store.GetAllContexts
	if c.All {
		load = ctx.Store.GetAllContextsIncludingDeleted
	}
	contexts, err := load()
	if err != nil {
		return fmt.Errorf("failed to get contexts: %w", err)
	}
	if len(contexts) == 0 {
		fmt.Println("No contexts found")
		return nil
	}

	fmt.Println("Contexts:")
	for _, context := range contexts {
		idStr := ""
		if c.ShowIDs {
			idStr = fmt.Sprintf(" (ID: %s)", context.ID)
		}
		deleted := ""
		if context.DeletedAt != nil {
			deleted = " [deleted]"
		}
		fmt.Printf("  @%s%s%s - %s %s-%s\n",
			context.Name, idStr, deleted, context.FormatWeekdays(), context.StartTime, context.EndTime)
	}
	return nil
}
