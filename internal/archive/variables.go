package archive

import "strings"

// Variable selections mirror the group's analysis conventions: per-category
// lists per component, plus the bookkeeping variables every postprocessed
// file carries.

var atmAlwaysInclude = []string{"LANDFRAC", "GRIDAREA", "gw", "date", "time_bnds"}

var lndAlwaysInclude = []string{"area", "landfrac", "landmask", "pftmask", "PCT_LANDUNIT"}

// PressureVariables are the hybrid-coordinate variables needed to
// reconstruct pressure levels from atm output.
var PressureVariables = []string{"P0", "hyam", "hybm", "PS", "hyai", "hybi", "ilev"}

// GhanVariables are the derived fields of Ghan's aerosol-cloud forcing
// decomposition, computed downstream from the RADIATIVE selection.
var GhanVariables = []string{"SWDIR", "LWDIR", "DIR", "SWCF", "LWCF", "NCFT", "SW_rest", "LW_rest"}

// Category is a named group of model variables postprocessed into one file.
type Category struct {
	Name      string
	Variables []string
}

var atmCategories = []Category{
	{"BVOC", []string{"SFisoprene", "SFmonoterp"}},
	{"SOA", []string{"N_AER", "DOD550", "SOA_A1", "SOA_NA", "cb_SOA_A1", "cb_SOA_NA", "cb_SOA_A1_OCW", "cb_SOA_NA_OCW"}},
	{"CLOUDPROP", []string{"ACTNL", "ACTREL", "CDNUMC", "CLDHGH", "CLDLOW", "CLDMED", "CLDTOT", "CLDLIQ", "CLOUD",
		"CLOUDCOVER_CLUBB", "FCTL", "NUMLIQ", "TGCLDLWP"}},
	{"RADIATIVE", []string{"FSDS", "FSNS", "FLNT", "FSNT", "FLNT_DRF", "FLNTCDRF", "FSNTCDRF", "FSNT_DRF", "LWCF", "SWCF"}},
	{"TURBFLUXES", []string{"LHFLX", "SHFLX"}},
}

var lndMEGVariables = []string{"MEG_isoprene", "MEG_limonene", "MEG_myrcene", "MEG_ocimene_t_b",
	"MEG_pinene_a", "MEG_pinene_b", "MEG_sabinene"}

var lndCategories = []Category{
	{"LAND", []string{"PCT_NAT_PFT", "TLAI"}},
	{"BIOGEOCHEM", []string{"GPP", "NPP", "NEE", "NEP", "STORVEGN", "TOTPFTN", "TOTVEGN",
		"TOTCOLC", "TOTECOSYSC", "TOTPFTC", "TOTVEGC", "STORVEGC"}},
	{"ET", []string{"QFLX_EVAP_TOT", "FCEV", "FCTR", "FGEV", "QSOIL", "QVEGE", "QVEGT"}},
}

// AlwaysInclude returns the bookkeeping variables carried by every
// postprocessed file of a component.
func AlwaysInclude(component string) []string {
	switch component {
	case "atm":
		return append([]string(nil), atmAlwaysInclude...)
	case "lnd":
		return append([]string(nil), lndAlwaysInclude...)
	default:
		return nil
	}
}

// Categories returns a component's variable categories. For lnd, the MEGAN
// emission variables join the LAND category only when BVOC emissions are
// interactive; cases tagged "-OFF" run with emissions held fixed.
func Categories(component string, bvoc bool) []Category {
	switch component {
	case "atm":
		return cloneCategories(atmCategories)
	case "lnd":
		cats := cloneCategories(lndCategories)
		if bvoc {
			cats[0].Variables = append(append([]string(nil), lndMEGVariables...), cats[0].Variables...)
		}
		return cats
	default:
		return nil
	}
}

// BVOCInteractive reports whether a case runs with interactive BVOC
// emissions, following the workflow's "-OFF" case-name tagging convention.
func BVOCInteractive(caseName string) bool {
	return !strings.Contains(caseName, "OFF")
}

func cloneCategories(src []Category) []Category {
	out := make([]Category, len(src))
	for i, c := range src {
		out[i] = Category{Name: c.Name, Variables: append([]string(nil), c.Variables...)}
	}
	return out
}
