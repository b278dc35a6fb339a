package cmd

import (
	"time"

	"github.com/oakwood-commons/tablekit/pkg/columns"
	"github.com/oakwood-commons/tablekit/pkg/schema"
)

// sampleRows returns a fixed hierarchy of demo rows so the preview has
// something to sort and lay out. The trailing loading rows exercise
// the placeholder-last ordering.
func sampleRows() []columns.Row {
	day := func(d int) time.Time {
		return time.Date(2026, time.March, d, 9, 0, 0, 0, time.UTC)
	}
	return []columns.Row{
		{
			ID: "f1", Name: "seq010", Label: "SEQ 010",
			EntityID: "f1", EntityType: schema.EntityFolder,
			Values: map[string]any{
				"subType": "Sequence", "status": "In progress",
				"fps": 24.0, "resolutionWidth": 1920, "client": "Hartwell",
			},
		},
		{
			ID: "f2", Name: "seq020", Label: "SEQ 020",
			EntityID: "f2", EntityType: schema.EntityFolder,
			Values: map[string]any{
				"subType": "Sequence", "status": "Not ready",
				"fps": 24.0, "resolutionWidth": 1920, "client": "Hartwell",
			},
		},
		{
			ID: "t1", Name: "animation", FolderPath: "seq010/sh0010",
			EntityID: "t1", EntityType: schema.EntityTask,
			Values: map[string]any{
				"subType": "Animation", "status": "Pending review",
				"assignees": "ada", "priority": "high", "startDate": day(3),
				"tags": "review",
			},
		},
		{
			ID: "t2", Name: "compositing", FolderPath: "seq010/sh0010",
			EntityID: "t2", EntityType: schema.EntityTask,
			Values: map[string]any{
				"subType": "Compositing", "status": "Ready to start",
				"assignees": "grace", "priority": "normal", "startDate": day(10),
			},
		},
		{
			ID: "v1", Name: "v003", FolderPath: "seq010/sh0010/renderMain",
			EntityID: "v1", EntityType: schema.EntityVersion,
			Values: map[string]any{
				"status": "Approved", "approved": true, "fps": 24.0,
				"tags": "final",
			},
		},
		{ID: "ld1", EntityType: schema.EntityTask, Loading: true},
		{ID: "ld2", EntityType: schema.EntityTask, Loading: true},
	}
}
