package cmd

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/tablekit/pkg/schema"
	"github.com/oakwood-commons/tablekit/pkg/settings"
	"github.com/oakwood-commons/tablekit/pkg/storage"
)

//go:embed defaults/project.yaml
var defaultProjectYAML []byte

// projectDoc is the on-disk document shape: the attribute schema plus
// the option catalogs, in one file.
type projectDoc struct {
	Attributes  []schema.Attribute `yaml:"attributes"`
	Statuses    []schema.Status    `yaml:"statuses"`
	FolderTypes []string           `yaml:"folderTypes"`
	TaskTypes   []string           `yaml:"taskTypes"`
	Assignees   []schema.Assignee  `yaml:"assignees"`
	Tags        []string           `yaml:"tags"`
}

// loadProject reads the project document from path, or the embedded
// default when path is empty, and validates the schema.
func loadProject(path string) (schema.Schema, schema.Catalogs, error) {
	data := defaultProjectYAML
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return schema.Schema{}, schema.Catalogs{}, fmt.Errorf("read project document: %w", err)
		}
	}

	var doc projectDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return schema.Schema{}, schema.Catalogs{}, fmt.Errorf("decode project document: %w", err)
	}

	sch := schema.Schema{Attributes: doc.Attributes}
	if err := sch.Validate(); err != nil {
		return schema.Schema{}, schema.Catalogs{}, err
	}
	catalogs := schema.Catalogs{
		Statuses:    doc.Statuses,
		FolderTypes: doc.FolderTypes,
		TaskTypes:   doc.TaskTypes,
		Assignees:   doc.Assignees,
		Tags:        doc.Tags,
	}
	return sch, catalogs, nil
}

// openLayoutStorage picks the document store for layout persistence: a
// file store under the state directory when one is configured, else an
// in-memory store that lives for this run only.
func openLayoutStorage(run *settings.Run) (storage.Store, error) {
	if run.StateDir == "" {
		return storage.NewMemoryStore(), nil
	}
	return storage.NewFileStore(run.StateDir)
}
