// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ledger implements the election core: a persistent store plus a
small set of invariant-preserving operations layered directly on top of
it. The HTTP handlers are presentation glue over this package.

# Construction

A Ledger wraps a *sql.DB and the injected election configuration:

	lg := ledger.New(conn, cfg.Election)

Every operation opens, acts, and releases; the ledger keeps no
in-memory caches and no locks. The store is the single shared mutable
resource.

# Vote Transaction

SubmitVotes is the one concurrency-critical operation. Per student the
state machine is NOT_VOTED -> VOTED, terminal until a full reset:

	err := lg.SubmitVotes(ctx, "AIE24207", map[string]string{
		"Hostler Boy": "Arjun", ...
	})

The ballot inserts and the voted mark commit as one transaction. The
already-voted check is re-verified inside that transaction, and the
students primary key turns the final INSERT into a compare-and-swap, so
N simultaneous submissions for one ID yield exactly one accepted ballot
and N-1 ErrAlreadyVoted rejections with nothing partially written.

# Candidate Lifecycle

	err := lg.AddCandidate(ctx, admin, "Arjun", "Hostler Boy")   // unique per category
	err  = lg.DeleteCandidate(ctx, admin, "Arjun", "Hostler Boy") // only if unvoted

A candidate with at least one recorded vote can never be deleted; the
count check and the delete share a transaction.

# Tally and Publish

	counts, err := lg.VoteCounts(ctx)     // per category, descending
	winners, err := lg.Winners(ctx)       // tied winner sets, never broken
	err = lg.PublishResults(ctx, admin)   // one-way 0 -> 1, no-op if already set
	err = lg.ResetElection(ctx, admin)    // wipes everything except admin_logs

# Errors

Conflicts and validation failures are sentinel errors (ErrAlreadyVoted,
ErrDuplicateCandidate, ErrCandidateHasVotes, ...) matched with
errors.Is; callers surface their messages directly. Anything else is a
storage error and guarantees no partial writes.
*/
package ledger
