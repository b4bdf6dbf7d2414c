package cmd

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// AssignMaxAttempts bounds the optimistic retry loop of the assignment
	// engine. Values below 1 fall back to the handler default.
	AssignMaxAttempts int
}
