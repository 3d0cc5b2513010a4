package scrape

import "regexp"

// Scrape-time exclusion rules. Deliberately matched against the title
// only: descriptions routinely mention "junior" in senior-role contexts
// ("mentoring junior staff"), so broader matching would throw away good
// listings. Bilingual EN/DE.
var excludePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(internship|praktikum|werkstudent|working\s*student|pflichtpraktikum)\b`),
	regexp.MustCompile(`(?i)\b(junior|trainee|azubi|ausbildung)\b`),
	regexp.MustCompile(`(?i)\b(unpaid|volunteer|ehrenamt)\b`),
}

// PassesExclusion reports whether a listing survives the scrape-time
// filter. Everything that passes is stored; narrowing by seniority,
// remote qualification or geography happens in a later refinement
// stage using the pattern sets below.
func PassesExclusion(title, description, location, company string) bool {
	for _, re := range excludePatterns {
		if re.MatchString(title) {
			return false
		}
	}
	return true
}

// Refinement-stage pattern sets. Compiled once here so the tables stay
// immutable configuration, but NOT applied at scrape time.

// IncludePatterns: a refined job must match at least one across
// title + description + company.
var IncludePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(chief\s+(data|ai|analytics)\s+officer|CDO|CAIO)\b`),
	regexp.MustCompile(`(?i)\b(vp|vice\s*president|director|direktor)\b.*\b(data|ai|analytics|ml|bi|machine\s*learning|data\s*science)\b`),
	regexp.MustCompile(`(?i)\b(data|ai|analytics|ml|bi|machine\s*learning|data\s*science)\b.*\b(vp|vice\s*president|director|direktor)\b`),
	regexp.MustCompile(`(?i)\bhead\s+of\b.*\b(data|ai|analytics|bi|machine\s*learning|data\s*science|engineering)\b`),
	// German compounds like Datenmanagement need the open-ended domain match
	regexp.MustCompile(`(?i)\b(leiter|bereichsleiter|abteilungsleiter)\b.*(daten|data|analytics|bi\b|ki\b|ai\b)`),
	regexp.MustCompile(`(?i)(daten|data|analytics|bi\b|ki\b|ai\b).*\b(leiter|bereichsleiter|abteilungsleiter)\b`),
	regexp.MustCompile(`(?i)\bmanager\b.*\b(data|analytics|ai|ml|bi|data\s*science)\b`),
	regexp.MustCompile(`(?i)\b(data|analytics|ai|ml|bi|data\s*science)\b.*\bmanager\b`),
	regexp.MustCompile(`(?i)\b(team|tech)\s*lead\b.*\b(data|ai|analytics|ml|bi)\b`),
	regexp.MustCompile(`(?i)\bteamleiter\b.*(daten|data|analytics|bi\b|ki\b|ai\b)`),
	regexp.MustCompile(`(?i)\blead\b.*\b(data|ai|analytics|ml|engineer|scientist|architect)\b`),
	regexp.MustCompile(`(?i)\b(data|ai)\s+(strategy|governance|platform)\b`),
}

// RemotePatterns: any match across all fields accepts a job from
// anywhere.
var RemotePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(100|80|90)%?\s*remote\b`),
	regexp.MustCompile(`(?i)\bfully\s*remote\b`),
	regexp.MustCompile(`(?i)\bremote\s*(first|only)\b`),
	regexp.MustCompile(`(?i)\bvollst[äa]ndig\s*remote\b`),
}

// LocalPatterns: Rheinland core, only checked for non-remote jobs.
var LocalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(d[üu]sseldorf|k[öo]ln|cologne|bonn|leverkusen|wuppertal|solingen)\b`),
	regexp.MustCompile(`(?i)\b(neuss|dormagen|langenfeld|monheim|hilden|ratingen|mettmann)\b`),
	regexp.MustCompile(`(?i)\b(bergisch\s*gladbach|erkrath|haan|burscheid|leichlingen)\b`),
	regexp.MustCompile(`(?i)\bnrw\b|nordrhein|rheinland`),
}
