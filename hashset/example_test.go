// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package hashset_test

import (
	"fmt"

	"github.com/aristanetworks/gocore/hashset"
)

func ExampleSet() {
	s := hashset.NewStrings()
	s.AddAll("red", "green", "blue", "green")
	fmt.Println(s.Size(), s.Contains("green"))
	s.Remove("green")
	fmt.Println(s.Size(), s.Contains("green"))
	// Output:
	// 3 true
	// 2 false
}

func ExampleSet_Iter() {
	s := hashset.NewNumbers[int]()
	s.AddAll(1, 2, 3)
	sum := 0
	it := s.Iter()
	for v, ok := it.Next(); ok; v, ok = it.Next() {
		sum += v
	}
	fmt.Println(sum, it.Valid())
	// Output:
	// 6 true
}
