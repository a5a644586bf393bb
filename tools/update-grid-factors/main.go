// Package main provides a tool to update the grid carbon-intensity table
// from the Ember yearly electricity data release.
//
// The tool fetches the latest CO2 intensity per location and rewrites
// internal/emissions/data/carbon_intensity.yaml, which is embedded into
// the binary as the default intensity table.
//
// Usage:
//
//	go run ./tools/update-grid-factors [--dry-run] [--validate]
//
// Flags:
//
//	--dry-run   Print changes without writing to file
//	--validate  Validate the fetched values are within expected range
//	--output    Path to carbon_intensity.yaml (default: ./internal/emissions/data/carbon_intensity.yaml)
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	// Ember yearly electricity data, long format. CO2 intensity rows
	// carry gCO2e per kWh of generated electricity.
	emberDataURL = "https://storage.googleapis.com/emb-prod-bkt-publicdata/public-downloads/yearly_full_release_long_format.csv"

	emberVariable = "CO2 intensity"

	// Valid range for grid intensity (kg CO2e per kWh). Near-zero grids
	// exist (hydro-heavy countries); none should exceed 1.5.
	minValidIntensity = 0.0
	maxValidIntensity = 1.5

	fileHeader = `# Grid carbon intensity of manufacturing electricity by location,
# kg CO2e per kWh. Source: Ember yearly electricity data, %s.
`
)

// locationMapping maps intensity-table locations to Ember entity names,
// in table order. Every location here must stay in sync with the
// EnergyLocation vocabulary in internal/emissions.
var locationMapping = []struct {
	location string
	entity   string
}{
	{"world", "World"},
	{"china", "China"},
	{"taiwan", "Taiwan"},
	{"south_korea", "South Korea"},
	{"japan", "Japan"},
	{"usa", "United States"},
	{"europe", "Europe"},
	{"india", "India"},
	{"singapore", "Singapore"},
}

// Intensity is one fetched grid-intensity entry.
type Intensity struct {
	Location string
	KgPerKWh float64
	Year     int
}

func main() {
	dryRun := flag.Bool("dry-run", false, "Print changes without writing to file")
	validate := flag.Bool("validate", true, "Validate fetched values are within expected range")
	output := flag.String("output", "./internal/emissions/data/carbon_intensity.yaml",
		"Path to carbon_intensity.yaml")
	flag.Parse()

	fmt.Println("Fetching Ember grid carbon intensity data...")
	fmt.Printf("Source: %s\n", emberDataURL)

	intensities, err := fetchIntensities()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching intensity data: %v\n", err)
		os.Exit(1)
	}

	if *validate {
		if err := validateIntensities(intensities); err != nil {
			fmt.Fprintf(os.Stderr, "Validation error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Validation passed")
	}

	content := generateIntensityFile(intensities)

	if *dryRun {
		fmt.Println("\n--- Dry run output ---")
		fmt.Println(content)
		return
	}

	if err := os.WriteFile(*output, []byte(content), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Updated %s with %d locations\n", *output, len(intensities))
	fmt.Println("Run 'go test ./internal/emissions/...' to verify the changes")
}

// fetchIntensities downloads the Ember release and keeps, per mapped
// location, the CO2 intensity row with the most recent year.
func fetchIntensities() ([]Intensity, error) {
	client := &http.Client{Timeout: 5 * time.Minute}

	resp, err := client.Get(emberDataURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch intensity data: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	entityToLocation := make(map[string]string, len(locationMapping))
	for _, m := range locationMapping {
		entityToLocation[m.entity] = m.location
	}

	r := csv.NewReader(resp.Body)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"Area", "Year", "Variable", "Value"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("CSV is missing the %q column", required)
		}
	}

	latest := make(map[string]Intensity, len(locationMapping))
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		if row[col["Variable"]] != emberVariable {
			continue
		}
		location, ok := entityToLocation[row[col["Area"]]]
		if !ok {
			continue
		}
		year, err := strconv.Atoi(row[col["Year"]])
		if err != nil {
			continue
		}
		gPerKWh, err := strconv.ParseFloat(row[col["Value"]], 64)
		if err != nil {
			continue
		}
		if prev, ok := latest[location]; ok && prev.Year >= year {
			continue
		}
		latest[location] = Intensity{Location: location, KgPerKWh: gPerKWh / 1000, Year: year}
	}

	var intensities []Intensity
	for _, m := range locationMapping {
		entry, ok := latest[m.location]
		if !ok {
			return nil, fmt.Errorf("no CO2 intensity rows for %q (%s)", m.entity, m.location)
		}
		intensities = append(intensities, entry)
	}
	return intensities, nil
}

// validateIntensities checks that all values are within expected range
// and that every entry carries the same data year.
func validateIntensities(intensities []Intensity) error {
	var errs []string

	year := intensities[0].Year
	for _, in := range intensities {
		if in.KgPerKWh < minValidIntensity || in.KgPerKWh > maxValidIntensity {
			errs = append(errs, fmt.Sprintf(
				"%s: intensity %.4f kg/kWh is outside valid range [%.1f, %.1f]",
				in.Location, in.KgPerKWh, minValidIntensity, maxValidIntensity,
			))
		}
		if in.Year != year {
			errs = append(errs, fmt.Sprintf(
				"%s: data year %d differs from %d; release may be partial",
				in.Location, in.Year, year,
			))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n%s", strings.Join(errs, "\n"))
	}
	return nil
}

// generateIntensityFile renders the carbon_intensity.yaml content in
// table order.
func generateIntensityFile(intensities []Intensity) string {
	var b strings.Builder
	fmt.Fprintf(&b, fileHeader, strconv.Itoa(intensities[0].Year))
	for _, in := range intensities {
		fmt.Fprintf(&b, "%s: %.3f kg/kWh\n", in.Location, in.KgPerKWh)
	}
	return b.String()
}
