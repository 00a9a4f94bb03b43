package config

// Supported values for DB.GormEngine.
const (
	EngineSQLite   = "sqlite"
	EngineMySQL    = "mysql"
	EnginePostgres = "postgres"
)

// DB holds the database configuration settings.
// URL, when set, is used verbatim as the connection string and wins over the
// discrete Host/Port/User/Password/Name/Extras fields.
type DB struct {
	GormEngine string
	URL        string
	Extras     string
	Host       string
	Port       int
	User       string
	Password   string
	Name       string
	Path       string // sqlite database file
}
