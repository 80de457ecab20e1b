//go:build atan2_deg3

package angle

// Default is the strategy rulers use unless one is given explicitly
const Default = Deg3
