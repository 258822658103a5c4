// Package logger provides the structured logging used across bevec.
//
// # Architecture
//
//   - Logger interface: the contract adapters and the facade log through
//   - LoggerClient struct: the zap-backed implementation
//   - NewLoggerClient constructor: returns *LoggerClient
//   - FXModule: provides both *LoggerClient and Logger
//
// # Direct Usage (Without FX)
//
//	log := logger.NewLoggerClient(logger.Config{
//		Level:         logger.Info,
//		EnableTracing: true,
//	})
//
//	log.Info("bevec client ready", nil, map[string]interface{}{
//		"provider": "qdrant",
//	})
//
//	// trace_id and span_id are added from the active span
//	log.InfoWithContext(ctx, "query served", nil, map[string]interface{}{
//		"collection": "docs",
//	})
//
// Tests and callers that do not care about output use NewNop.
//
// # FX Module Integration
//
//	app := fx.New(
//		logger.FXModule,
//		fx.Supply(logger.Config{Level: logger.Debug, ServiceName: "indexer"}),
//		fx.Invoke(func(log logger.Logger) {
//			log.Info("service started", nil)
//		}),
//	)
//	app.Run()
//
// # Logging Levels
//
//	log.Debug("per-operation detail", nil)  // only with Level: debug
//	log.Info("lifecycle events", nil)
//	log.Warn("recoverable problems", nil)
//	log.Error("failed operation", err)
//
// # Configuration
//
//	BEVEC_LOG_LEVEL=debug        # debug, info, warning, error
//	BEVEC_LOG_TRACING=true       # add trace_id/span_id in *WithContext
//	BEVEC_LOG_CONSOLE=true       # human readable output
//
// # Thread Safety
//
// All methods on LoggerClient are safe for concurrent use.
package logger
