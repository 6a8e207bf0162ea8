package version

// Version is overridden at build time via
// -ldflags "-X github.com/abhishek-mmvi/CrayonMonsters/internal/version.Version=v1.2.3".
var Version = "dev"
