// Package integration provides integration tests for the bigmath foundation
// library.
//
// Package: integration
// Title: bigmath Foundation Integration Tests
// Description: Integration tests verifying that errors raised by the function
//              engine carry consistent codes, severities and operations,
//              and that they survive wrapping and structured logging.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation of integration test suite
// - 2026-10-19 v0.2.0: Error checks for the function engine
//
// Error Integration Tests (error_integration_test.go):
// - Every engine failure is a *bmerror.Error with module and operation
// - Error severity follows the error code
// - Wrapping keeps the code visible to errors.Is and the predicates
// - Errors logged through the JSON formatter keep their details
//
// Running Tests:
//
//	go test ./foundation/test/integration/...
package integration
