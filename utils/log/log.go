package log

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/verilab/verifeed/utils/dotenv"
	"github.com/verilab/verifeed/utils/flag"
)

// global accessible logger
var (
	logger *logrus.Logger
	Log    *logrus.Entry
)

// This init function is only for testing cases, where the entry point is not
// main function. Unit test will fail with nil pointer dereference if we don't
// init here.
func init() {
	InitLogger()
}

func InitLogger() {
	logger = logrus.New()

	// Structured JSON in production so logs stay machine-parsable, plain
	// text everywhere else for readability.
	if os.Getenv("VERIFEED_ENV") == dotenv.ProdEnv {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	logger.SetOutput(os.Stderr)

	Log = logger.WithFields(
		logrus.Fields{"service": *flag.ServiceName, "is_development": os.Getenv("VERIFEED_ENV") != dotenv.ProdEnv},
	)
}
