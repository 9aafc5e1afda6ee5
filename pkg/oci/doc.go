// Package oci provides functionality for pushing measurement documents to OCI-compliant registries.
//
// Measurement plans are shared configuration documents: the same plan drives
// many estimation runs across many deployments. This package lets plans (and
// assembled reports) be distributed through any OCI-compliant registry
// (Docker Hub, GHCR, ECR, local registries, etc.) using the ORAS
// (OCI Registry As Storage) library.
//
// # Overview
//
// The package provides two main operations:
//   - ParseTarget: Classifies a target string as an OCI URI or a local path
//   - Push: Packs a document file as a single-layer OCI 1.1 artifact and pushes it
//
// # Core Types
//
//   - Reference: A parsed target (registry/repository/tag or local path)
//   - PushOptions: Configuration for pushing to remote registries
//   - PushResult: Result of a successful push (digest, reference)
//
// # Usage
//
//	ref, err := oci.ParseTarget("oci://ghcr.io/sogno/plans:v1.0.0")
//	if err != nil {
//	    return err
//	}
//	result, err := oci.Push(ctx, oci.PushOptions{
//	    Path:       "plan.yaml",
//	    Registry:   ref.Registry,
//	    Repository: ref.Repository,
//	    Tag:        ref.Tag,
//	})
//
// # Configuration
//
// PushOptions supports several configuration options:
//   - PlainHTTP: Use HTTP instead of HTTPS (for local development registries)
//   - InsecureTLS: Skip TLS certificate verification
//   - ArtifactType: Override the OCI 1.1 artifact type
//
// # Authentication
//
// The package automatically uses Docker credential helpers for authentication.
// Credentials are loaded from the standard Docker configuration (~/.docker/config.json)
// using the ORAS credentials package.
//
// # Artifact Type
//
// Plans are pushed with the artifact type "application/vnd.sogno.pyvolt.plan"
// and reports with "application/vnd.sogno.pyvolt.report". These custom types
// distinguish measurement documents from runnable container images. Consumers
// that don't understand them should treat the artifact as a non-executable blob.
package oci
