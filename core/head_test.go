package core

import "testing"

func chain(genesis *TreeNode, n int) []*TreeNode {
	nodes := make([]*TreeNode, 0, n)
	parent := genesis
	for i := 0; i < n; i++ {
		node := &TreeNode{Parent: parent, Height: parent.Height + 1}
		nodes = append(nodes, node)
		parent = node
	}
	return nodes
}

func TestLowestCommonAncestorOnFork(t *testing.T) {
	genesis := &TreeNode{Height: 1}
	branchA := chain(genesis, 3) // A1 A2 A3
	branchB := chain(genesis, 2) // B1 B2, forking at genesis too

	lca := lowestCommonAncestor(branchA[2], branchB[1])
	if lca != genesis {
		t.Fatalf("expected genesis as LCA, got %+v", lca)
	}
}

func TestLowestCommonAncestorSharedPrefix(t *testing.T) {
	genesis := &TreeNode{Height: 1}
	shared := chain(genesis, 2) // S1 S2
	forkA := chain(shared[1], 2)
	forkB := chain(shared[1], 3)

	lca := lowestCommonAncestor(forkA[1], forkB[2])
	if lca != shared[1] {
		t.Fatalf("expected shared[1] as LCA, got %+v", lca)
	}
}

func TestLowestCommonAncestorSameNode(t *testing.T) {
	genesis := &TreeNode{Height: 1}
	if lowestCommonAncestor(genesis, genesis) != genesis {
		t.Fatal("LCA of a node with itself should be itself")
	}
}

func TestHeadTrackerOnlyAdvancesOnStrictlyGreaterHeight(t *testing.T) {
	genesis := &TreeNode{Height: 1}
	ht := NewHeadTracker(genesis)

	sameHeight := &TreeNode{Parent: genesis, Height: 1}
	advanced, _ := ht.Accept(sameHeight)
	if advanced {
		t.Fatal("expected equal height not to advance head")
	}
	if ht.Head() != genesis {
		t.Fatal("head should remain genesis")
	}

	child := &TreeNode{Parent: genesis, Height: 2}
	advanced, displaced := ht.Accept(child)
	if !advanced || len(displaced) != 0 {
		t.Fatalf("expected simple advance with no displacement, got advanced=%v displaced=%v", advanced, displaced)
	}
	if ht.Head() != child {
		t.Fatal("head should now be child")
	}
}

func TestHeadTrackerReorgDisplacesOldBranch(t *testing.T) {
	genesis := &TreeNode{Height: 1}
	ht := NewHeadTracker(genesis)

	oldBranch := chain(genesis, 1) // height 2
	ht.Accept(oldBranch[0])
	if ht.Head() != oldBranch[0] {
		t.Fatal("setup: head should be oldBranch[0]")
	}

	newBranch := chain(genesis, 2) // two new blocks off genesis, height 2 then 3
	advanced, displaced := ht.Accept(newBranch[0])
	if advanced {
		t.Fatal("equal height should not yet advance")
	}
	advanced, displaced = ht.Accept(newBranch[1])
	if !advanced {
		t.Fatal("strictly greater height should advance")
	}
	if len(displaced) != 1 || displaced[0] != oldBranch[0] {
		t.Fatalf("expected oldBranch[0] displaced, got %+v", displaced)
	}
	if ht.Head() != newBranch[1] {
		t.Fatal("head should now be newBranch[1]")
	}
}
