// Package mongo provides MongoDB storage for session bags behind
// session.DurableContainer.
//
// One document per visitor: the token as _id, the encoded bag as a JSON
// string, and the access stamp as an int64 field. Stamp writes use the
// $max update operator, keeping the merge-max rule on the server side.
// Documents carry no TTL index; expiry is owned by the container, which
// sweeps through Stamps and Delete.
//
// # Usage
//
//	db, err := mongo.NewWithDatabase(ctx, cfg, "app")
//	if err != nil {
//	    // handle error
//	}
//	store, err := sessionmongo.New(db)
//	if err != nil {
//	    // handle error
//	}
//	if err := store.EnsureIndexes(ctx); err != nil {
//	    // handle error
//	}
//	container, err := session.NewDurable(store, session.WithTimeout(time.Hour))
//
// # Errors
//
// Load reports a missing document as session.ErrNotFound and undecodable
// bag bytes as session.ErrCorruptData. Driver failures are wrapped
// together with session.ErrBackend using errors.Join.
package mongo
