//go:build atan2_deg5

package angle

// Default is the strategy rulers use unless one is given explicitly
const Default = Deg5
