// Learnmate - Interest-Based Learning Recommendations and Chat
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnmate

/*
Package supervisor runs Learnmate's long-lived components under a suture
supervisor tree.

Tree layout:

	learnmate (root)
	├── maintenance-layer
	│   └── session-cleanup
	└── api-layer
	    └── http-server

Services are restarted with exponential backoff when they return an error
or panic. Repeated failures beyond FailureThreshold (decaying at
FailureDecay per second) put the supervisor into FailureBackoff before the
next restart. Supervisor events are logged through sutureslog, bridged to
zerolog by logging.NewSlogLogger.

Canceling the context passed to Serve stops every service. Services that do
not return within ShutdownTimeout are listed by UnstoppedServiceReport.

Example:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		return err
	}
	tree.AddMaintenanceService(services.NewSessionCleanupService(store, time.Hour))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return tree.Serve(ctx)
*/
package supervisor
