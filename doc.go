// Package folio is the Composition Root for the folio application.
//
// It connects the synchronization core (Domain Layer) with the HTTP adapter
// that talks to a portfolio REST API, using the Hexagonal Architecture pattern.
//
// Philosophy:
//
// The portfolio is one shared document. It is fetched once, read by any
// number of independent panels, and edited through create/update/delete
// calls that never touch the local copy. A successful edit only raises a
// reload request; the sync controller answers it with a fresh fetch, so
// every reader always sees what the server has, never what was submitted.
//
// Features:
//
//   - **Single Writer**: Only the sync controller replaces the document.
//   - **No Dropped Reloads**: A reload raised during a fetch queues exactly one follow-up fetch.
//   - **Honest Loading Flag**: Loading is raised for exactly the duration of every request.
//   - **Generic Mutations**: One typed repository (`NewRepository[T]`) serves every entity kind.
//   - **Reactive Panels**: `Service.Watch` streams change events filtered by collection glob.
//
// Usage:
//
//	svc, err := folio.New("https://example.com/api/portfolio",
//		folio.WithToken(token),
//		folio.WithLogger(logger),
//	)
//	if err := svc.Start(ctx); err != nil { ... }
//
//	admin := folio.NewAdmin(svc)
//	err = admin.Courses.Create(ctx, folio.Form{"title": "Go", ...})
package folio
