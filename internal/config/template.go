package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# stlcopy configuration
#
# roots: the shares searched for case folders. Exactly one root may be
# marked printQueue: true; it is searched recursively in file mode and
# receives file-mode copies. Mark a root restricted: true to apply the
# Exocad allow-list filter to its files.
roots:
  - label: "Model Material"
    path: '\\Skdla-sa-nas01\skdla-sa\3Shape Design Output\Model Material'
  - label: "Exocad"
    path: '\\Skdla-sa-nas01\skdla-sa\CAD-Data -- Exocad'
    restricted: true
  - label: "InHouse Printing"
    path: '\\KDC-LABSERVER\CadCam\! INHOUSE PRINTING !'
    printQueue: true

# Destination bases for folder-mode copies.
modelBase: '\\KDC-LABSERVER\CadCam\! INHOUSE PRINTING !\.MODELS'
tissueBase: '\\KDC-LABSERVER\CadCam\! INHOUSE PRINTING !\TISSUE'

# Copying is blocked when the total copyable size exceeds this cap.
sizeCapMiB: 620
`

// WriteTemplate writes the annotated default configuration to path.
func WriteTemplate(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", path)
		}
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(configTemplate), 0o644)
}
