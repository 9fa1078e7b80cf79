// Values are injected at build time with -ldflags "-X github.com/statismics/backend/internal/pkg/bininfo.Version=..."

package bininfo

var (
	// Version is the SemVer version of the binary.
	// Git commit is appended, if available, separated by a plus sign [+].
	Version = "v0.0.0"

	// BuildTime is the time at which the application was built.
	BuildTime = "1970-01-01T00:00:00Z"
)
