package funcwander_test

import (
	"context"
	"fmt"

	funcwander "github.com/oldnick85/func-wander"
	"github.com/oldnick85/func-wander/atom"
	"github.com/oldnick85/func-wander/target"
)

func Example() {
	// Vocabulary: the argument X and bitwise NOT.
	lib := atom.NewLibrary[uint16]()
	lib.AddNullary(atom.NewArg[uint16](16))
	lib.AddUnary(atom.NewNot[uint16]())

	// Target: the bitwise complement of the argument.
	values := make([]uint16, 16)
	for i := range values {
		values[i] = ^uint16(i)
	}
	tgt := target.NewTableTarget(values)

	task, err := funcwander.Wander(lib, tgt).
		MaxDepth(2).
		Logger(funcwander.NoopLogger()).
		Build()
	if err != nil {
		panic(err)
	}

	if err := task.Run(context.Background()); err != nil {
		panic(err)
	}
	if err := task.Wait(); err != nil {
		panic(err)
	}

	fmt.Println(task.Best()[0])
	// Output: NOT(X)
}
