package cmd

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	AmqpURL    string
	JwtSecret  string
	SeedDemo   bool
	// DispatchCronSpec is a seconds-resolution cron expression,
	// e.g. "*/5 * * * * *" for every five seconds.
	DispatchCronSpec string
}
