package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// catalogFile is the on-disk YAML shape of a catalog definition.
type catalogFile struct {
	Questions []Question `yaml:"questions"`
}

// Load reads a question catalog from a YAML file. The file fully
// replaces the built-in set, so deployments can reorder, extend, or trim
// the questionnaire without rebuilding the binary.
//
// Expected shape:
//
//	questions:
//	  - id: feature-purpose
//	    prompt: What problem does this feature solve?
//	    type: textarea
//	    category: overview
//	    required: true
//	    order: 1
//	  - id: ui-requirements
//	    prompt: Describe the UI requirements.
//	    type: textarea
//	    category: ui/ux
//	    required: true
//	    order: 21
//	    depends_on:
//	      question: has-ui
//	      equals: true
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing catalog file %s: %w", path, err)
	}
	if len(file.Questions) == 0 {
		return nil, fmt.Errorf("catalog file %s defines no questions", path)
	}

	c, err := New(file.Questions...)
	if err != nil {
		return nil, fmt.Errorf("catalog file %s: %w", path, err)
	}
	return c, nil
}
