package main

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"dupescan/internal/grouping"
)

// renderGroups lays out the duplicate report, one row per file,
// canonical member first within each group.
func renderGroups(groups []grouping.Group) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Group", "Signature", "Role", "Path", "Kind", "Created"})

	for i, group := range groups {
		for j, member := range group.Members {
			role := "duplicate"
			if j == 0 {
				role = "keep"
			}
			tw.AppendRow(table.Row{
				i + 1,
				groupSignature(group),
				role,
				member.Path,
				member.Kind.String(),
				member.CreatedAt.Format(time.DateTime),
			})
		}
		tw.AppendSeparator()
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
	})

	return tw.Render()
}

// groupSignature abbreviates the visual key for display; video payloads
// concatenate one hash per sampled frame and would swamp the table.
func groupSignature(group grouping.Group) string {
	key := group.Key.Visual
	payload := key.Payload
	if len(payload) > 16 {
		payload = payload[:16] + "…"
	}
	label := key.Kind.String() + ":" + payload
	if group.Key.Cluster > 0 {
		label = fmt.Sprintf("%s#%d", label, group.Key.Cluster)
	}
	return label
}
