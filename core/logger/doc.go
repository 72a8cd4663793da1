// Package logger builds slog loggers and provides attribute helpers so log
// records use the same keys across the storefront packages.
//
// # Construction
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, cfg.AppName),
//		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
//	)
//
// WithDevelopment writes text at debug level; WithStaging and WithProduction
// write JSON at info level. Individual options override the preset when they
// come after it. Discard returns a logger that drops everything, for tests.
//
// # Attributes
//
//	log.Log(ctx, apiclient.LogLevel(err), "failed to fetch cart",
//		logger.Component("cart"),
//		logger.Error(err),
//	)
//
// Transport helpers (Method, Path, URL, StatusCode, RequestID, Latency) describe
// API calls; domain helpers (UserID, Email, ProductID, CartItemID, OrderID,
// Quantity, Page, Total) describe storefront entities. Error, RequestID, UserID
// and Email return an empty attribute for zero values, which slog drops.
package logger
