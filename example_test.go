// example_test.go: godoc examples for the node store
//
// These examples appear in the generated documentation on pkg.go.dev
// and are executed as part of the test suite to ensure they remain valid.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package nodestore_test

import (
	"fmt"

	"github.com/agilira/nodestore"
	"github.com/agilira/nodestore/node"
)

// ExampleNewStore demonstrates basic store creation, insertion with
// store-assigned identifiers, and lookup.
func ExampleNewStore() {
	store, err := nodestore.NewStore(nodestore.DefaultConfig())
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	ref := store.NewNode(node.ClassVariable)
	ref.Node().(*node.VariableNode).BrowseName = "Temperature"
	ref.Node().SetNodeID(node.NewNumericID(node.NamespaceDefault, 0))

	id, err := store.Insert(ref)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	got, ok := store.Get(id)
	if !ok {
		fmt.Println("not found")
		return
	}
	fmt.Println(got.Node().(*node.VariableNode).BrowseName)
	store.Release(got)

	// Output: Temperature
}

// ExampleStore_BorrowCopy demonstrates the copy-on-write update path.
func ExampleStore_BorrowCopy() {
	store, _ := nodestore.NewStore(nodestore.DefaultConfig())

	ref := store.NewNode(node.ClassVariable)
	ref.Node().SetNodeID(node.NewNumericID(node.NamespaceDefault, 1))
	ref.Node().(*node.VariableNode).Value = 21.5
	id, _ := store.Insert(ref)

	cp, err := store.BorrowCopy(id)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	cp.Node().(*node.VariableNode).Value = 22.0
	if err := store.Replace(cp); err != nil {
		fmt.Println("error:", err)
		return
	}

	got, _ := store.Get(id)
	fmt.Println(got.Node().(*node.VariableNode).Value)
	store.Release(got)

	// Output: 22
}
