package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// defaultFederalRegisterURL is the documents query template; DATE and
// AGENCY placeholders are filled per request.
const defaultFederalRegisterURL = "https://www.federalregister.gov/api/v1/documents.json?fields[]=type&fields[]=publication_date&fields[]=abstract&fields[]=agency_names&fields[]=citation&fields[]=effective_on&fields[]=document_number&fields[]=pdf_url&fields[]=body_html_url&fields[]=title&conditions[publication_date][gte]=DATE_PLACEHOLDER&conditions[agencies][]=FR_AGENCY_NAME&conditions[type][]=RULE&conditions[type][]=PRORULE"

// Agency describes one federal agency tracked by the pipelines.
type Agency struct {
	Name               string `yaml:"name"`
	Description        string `yaml:"description"`
	FRAgencyName       string `yaml:"fr_agency_name"`
	ShortName          string `yaml:"short_name"`
	FederalRegisterURL string `yaml:"federal_register_url,omitempty"`
}

// DocumentsURL formats the Federal Register query URL for this agency
// from the given start date (YYYY-MM-DD).
func (a Agency) DocumentsURL(date string) string {
	url := a.FederalRegisterURL
	if url == "" {
		url = defaultFederalRegisterURL
	}
	url = strings.ReplaceAll(url, "FR_AGENCY_NAME", a.FRAgencyName)
	url = strings.ReplaceAll(url, "DATE_PLACEHOLDER", date)
	return url
}

// BuiltinAgencies returns the compiled-in agency registry entries.
func BuiltinAgencies() []Agency {
	return []Agency{
		{
			Name:         "Department of Transportation",
			Description:  "Federal department responsible for transportation regulations",
			FRAgencyName: "transportation-department",
			ShortName:    "dot",
		},
		{
			Name:         "Environmental Protection Agency",
			Description:  "Federal agency responsible for environmental protection and regulations",
			FRAgencyName: "environmental-protection-agency",
			ShortName:    "epa",
		},
		{
			Name:         "Federal Mine Safety and Health Review Commission",
			Description:  "Ensures compliance with occupational safety and health standards in the Nation's surface and underground coal, metal, and nonmetal mines.",
			FRAgencyName: "federal-mine-safety-and-health-review-commission",
			ShortName:    "fmsc",
		},
		{
			Name:         "Health and Human Services Department",
			Description:  "The Cabinet-level department of the Federal executive branch most involved with the Nation's human concerns.",
			FRAgencyName: "health-and-human-services-department",
			ShortName:    "hhs",
		},
		{
			Name:         "National Oceanic and Atmospheric Administration",
			Description:  "Responsible for protecting America's ocean, coastal, and living marine resources while promoting sustainable economic development.",
			FRAgencyName: "national-oceanic-and-atmospheric-administration",
			ShortName:    "noaa",
		},
		{
			Name:         "National Highway Traffic Safety Administration",
			Description:  "Carries out programs relating to the safety performance of motor vehicles and related equipment.",
			FRAgencyName: "national-highway-traffic-safety-administration",
			ShortName:    "nhtsa",
		},
		{
			Name:         "U.S. Citizenship and Immigration Services",
			Description:  "Handles immigration benefits; enforcement and border security live with ICE and CBP.",
			FRAgencyName: "u-s-citizenship-and-immigration-services",
			ShortName:    "uscis",
		},
	}
}

// AgencyRegistry resolves agencies by Federal Register slug or short name.
type AgencyRegistry struct {
	agencies []Agency
	byName   map[string]Agency
}

// NewAgencyRegistry builds a registry from the given agencies.
func NewAgencyRegistry(agencies []Agency) *AgencyRegistry {
	r := &AgencyRegistry{
		agencies: agencies,
		byName:   make(map[string]Agency, len(agencies)*2),
	}
	for _, a := range agencies {
		if a.FRAgencyName != "" {
			r.byName[strings.ToLower(a.FRAgencyName)] = a
		}
		if a.ShortName != "" {
			r.byName[strings.ToLower(a.ShortName)] = a
		}
	}
	return r
}

// LoadAgencies returns the built-in registry, extended or overridden by an
// optional YAML file (a list of agency entries keyed by short name wins
// over the built-in with the same short name).
func LoadAgencies(overridePath string) (*AgencyRegistry, error) {
	agencies := BuiltinAgencies()

	if overridePath != "" {
		data, err := os.ReadFile(overridePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read agency override file: %w", err)
		}
		var overrides []Agency
		if err := yaml.Unmarshal(data, &overrides); err != nil {
			return nil, fmt.Errorf("failed to parse agency override file: %w", err)
		}
		agencies = mergeAgencies(agencies, overrides)
	}

	return NewAgencyRegistry(agencies), nil
}

func mergeAgencies(builtin, overrides []Agency) []Agency {
	merged := make([]Agency, 0, len(builtin)+len(overrides))
	replaced := make(map[string]bool, len(overrides))
	for _, o := range overrides {
		replaced[strings.ToLower(o.ShortName)] = true
	}
	for _, a := range builtin {
		if !replaced[strings.ToLower(a.ShortName)] {
			merged = append(merged, a)
		}
	}
	return append(merged, overrides...)
}

// ErrUnknownAgency is returned when a lookup matches no registry entry.
var ErrUnknownAgency = errors.New("unknown agency")

// Lookup resolves an agency by Federal Register slug or short name,
// case-insensitively.
func (r *AgencyRegistry) Lookup(name string) (Agency, error) {
	if a, ok := r.byName[strings.ToLower(name)]; ok {
		return a, nil
	}
	return Agency{}, fmt.Errorf("%w: %q", ErrUnknownAgency, name)
}

// Agencies returns all registered agencies.
func (r *AgencyRegistry) Agencies() []Agency {
	out := make([]Agency, len(r.agencies))
	copy(out, r.agencies)
	return out
}
