//go:build !atan2_deg3 && !atan2_deg5

package angle

// Default is the strategy rulers use unless one is given explicitly. Build with
// -tags atan2_deg3 or -tags atan2_deg5 to change it; setting both tags fails to
// compile because Default is declared twice.
const Default = Exact
