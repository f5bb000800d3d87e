package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

func initCmd() *cobra.Command {
	var projectName string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold a new scalar project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(projectName) == "" {
				return fmt.Errorf("--name is required")
			}
			return runInit(projectName)
		},
	}
	cmd.Flags().StringVar(&projectName, "name", "", "Project name")
	return cmd
}

func runInit(projectName string) error {
	schemaPath := "schema.yaml"
	dataDir := "data"
	for _, path := range []string{configPath, schemaPath} {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
	}

	configContents := fmt.Sprintf(`project: %s
version: 1

database:
  dsn: sqlite://./scalar.db

server:
  addr: :8080
  log_level: info
  base_url: ""

game:
  data_dir: ./data
  schema: ./schema.yaml
  default_category: Countries
  credits: 3
  hint_move_cost: 3
  distance_unit: km
`, projectName)
	if err := os.WriteFile(configPath, []byte(configContents), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", configPath, err)
	}
	if err := os.WriteFile(schemaPath, []byte(starterSchema), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", schemaPath, err)
	}

	if err := os.MkdirAll(dataDir, 0o750); err != nil {
		return fmt.Errorf("creating %s: %w", dataDir, err)
	}
	entitiesPath := filepath.Join(dataDir, "countries.json")
	if _, err := os.Stat(entitiesPath); err == nil {
		return fmt.Errorf("%s already exists", entitiesPath)
	}
	if err := os.WriteFile(entitiesPath, []byte(starterEntities), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", entitiesPath, err)
	}

	fmt.Fprintf(os.Stdout, "Created %s, %s and %s. Run `scalar validate` to check them.\n",
		configPath, schemaPath, entitiesPath)
	return nil
}

const starterSchema = `version: 1
categories:
  - name: Countries
    icon: "🌍"
    entities: countries.json
    par: 6
    fields:
      - key: name
        label: Name
        data_type: STRING
        logic_type: TARGET
        display_format: TEXT
      - key: continent
        label: Continent
        data_type: STRING
        logic_type: CATEGORY_MATCH
        display_format: TEXT
      - key: population
        label: Population
        data_type: INT
        logic_type: HIGHER_LOWER
        display_format: NUMBER
      - key: coordinates
        label: Distance
        data_type: LIST
        logic_type: GEO_DISTANCE
        display_format: DISTANCE
`

const starterEntities = `[
  {
    "id": "swe",
    "name": "Sweden",
    "continent": "Europe",
    "population": 10500000,
    "coordinates": [62.0, 15.0]
  },
  {
    "id": "jpn",
    "name": "Japan",
    "continent": "Asia",
    "population": 125700000,
    "coordinates": [36.0, 138.0]
  },
  {
    "id": "bra",
    "name": "Brazil",
    "continent": "South America",
    "population": 214300000,
    "coordinates": [-10.0, -55.0]
  }
]
`
