// Package models defines domain entities and persistence interfaces for the Photo Web services.
//
// The package contains two categories of types:
//
// 1. Library Records: Structs mirroring the photo library export consumed and served as JSON
//   - [Album] : Album metadata with its slash-delimited placement path and photo membership
//   - [Photo] : Photo metadata including dimensions, location, and access realm
//   - [Library] : The full album/photo document loaded from the library export
//
// 2. Persistent Entities: Database-backed models with full lifecycle management
//   - [User] : User accounts with role assignments for realm-based access control
//   - [Session] : Login sessions binding a hashed cookie token to a user
//
// All persistent entities implement the Model interface providing ID generation, timestamps, validation, and soft delete support.
// The Repository[T] interface defines standard CRUD operations for database access.
//
// Access control is realm-based: every album and photo carries a [Realm]
// (public, protected, private) derived from its folder placement, and a user's
// comma-separated roles decide which realms they may read.
package models
