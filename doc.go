// Package funcwander finds integer functions by brute force.
//
// Given a vocabulary of atoms (variables, constants, unary and binary
// operations) and a target input/output table, func-wander enumerates every
// expression tree up to a depth bound, scores each candidate against the
// target and keeps a ranked list of the closest matches. Every candidate
// tree has an exact serial number, so a search can be snapshotted at any
// point and resumed later, on another machine if the snapshot lives in
// object storage.
//
// # Quick Start
//
//	lib := atom.NewLibrary[uint16]()
//	lib.AddNullary(atom.NewArg[uint16](256))
//	lib.AddNullary(atom.NewConst[uint16](1, 256))
//	lib.AddUnary(atom.NewNot[uint16]())
//	lib.AddBinary(atom.NewAnd[uint16]())
//
//	tgt := target.NewTableTarget(desiredValues)
//
//	task, err := funcwander.Wander(lib, tgt).
//	    MaxDepth(4).
//	    MaxBest(16).
//	    Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	task.Run(ctx)
//	task.Wait()
//	for _, fn := range task.Best() {
//	    fmt.Println(fn)
//	}
//
// # Resumable Searches
//
// A task snapshots its complete progress, including the current tree and the
// best-list, into a small self-describing file:
//
//	store, _ := persist.NewLocalStore("./snapshots")
//	task, _ := funcwander.Wander(lib, tgt).
//	    Autosave(store, "alaw.fws", time.Minute).
//	    Build()
//	task.LoadFrom(ctx, store, "alaw.fws") // resume if a snapshot exists
//
// # Pruning
//
// Two pruning modes, both on by default, shrink the space without losing
// distinct candidates: constant candidates are skipped because a constant
// never depends on its input, and mirror duplicates of commutative
// operations are skipped because AND(a;b) equals AND(b;a).
package funcwander
