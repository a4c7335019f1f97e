// Package testsupport collects fixture and golden helpers shared by package
// tests.
package testsupport
