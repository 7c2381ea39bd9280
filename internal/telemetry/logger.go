package telemetry

import "go.uber.org/zap"

// NewLogger builds the service logger. Production gets the JSON encoder,
// anything else the human-readable development one.
func NewLogger(environment string) (*zap.SugaredLogger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}
