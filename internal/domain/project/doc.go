// Package project models the build graph handed over by the host build
// engine: projects, their compile steps and optional capabilities, the
// graph of one root plus subprojects, and the evaluation order declared
// between them.
//
// The layout pass never creates or destroys projects. It only reads names
// and rewrites output directories, compile targets and a few extension
// attributes, discovering what a project supports through the capability
// interfaces (HasLibraryExtension, HasJavaCompileSteps, HasKotlinCompileSteps,
// HasJavaToolchain, HasRepositories) rather than through plugin ids.
package project
