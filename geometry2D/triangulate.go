package geometry2D

import (
	"math"
	"sort"
)

func IsIllegalEdge(prX, prY, piX, piY, pjX, pjY, pkX, pkY float64) bool {
	/*
		pr is a new point for candidate triangle pi-pj-pr
		pi-pj is a shared edge between pi-pj-pk and pi-pj-pr
		if pr lies inside the circle defined by pi-pj-pk:
			- The edge pi-pj should be swapped with pr-pk to make two new triangles:
				pi-pr-pk and pj-pk-pr
	*/
	inCircle := func(ax, ay, bx, by, cx, cy, dx, dy float64) (inside bool) {
		// Calculate handedness, counter-clockwise is (positive) and clockwise is (negative)
		signBit := math.Signbit((bx-ax)*(cy-ay) - (cx-ax)*(by-ay))
		ax_ := ax - dx
		ay_ := ay - dy
		bx_ := bx - dx
		by_ := by - dy
		cx_ := cx - dx
		cy_ := cy - dy
		det := (ax_*ax_+ay_*ay_)*(bx_*cy_-cx_*by_) -
			(bx_*bx_+by_*by_)*(ax_*cy_-cx_*ay_) +
			(cx_*cx_+cy_*cy_)*(ax_*by_-bx_*ay_)
		if signBit {
			return det < 0
		} else {
			return det > 0
		}
	}
	return inCircle(piX, piY, pjX, pjY, pkX, pkY, prX, prY)
}

// orient is twice the signed area of a-b-c, positive when counter-clockwise
func orient(ax, ay, bx, by, cx, cy float64) float64 {
	return (bx-ax)*(cy-ay) - (cx-ax)*(by-ay)
}

/*
dTri is a working triangle of the incremental triangulation. Vertices are stored
counter-clockwise; Adj[i] is the neighbor across the edge V[i] -> V[(i+1)%3], or
-1 on the hull of the super triangle.
*/
type dTri struct {
	V    [3]int32
	Adj  [3]int32
	Dead bool
}

type triangulator struct {
	X, Y  []float64
	Tris  []dTri
	stamp   []int32
	epoch   int32
	last    int32
	skipped []bool // Input points dropped as duplicates
}

/*
Delaunay triangulates the planar point set (X[i], Y[i]) with the Bowyer-Watson
algorithm and returns counter-clockwise triangles indexed into the input. Points
that coincide with an already inserted point are skipped. Fewer than 3 distinct,
non-collinear points produce no triangles.
*/
func Delaunay(X, Y []float64) (tris [][3]int32) {
	var (
		np = len(X)
	)
	if np < 3 || len(Y) != np {
		return
	}
	tr := newTriangulator(X, Y)
	// Insertion in sorted order keeps the point location walk short
	order := make([]int, np)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if X[a] != X[b] {
			return X[a] < X[b]
		}
		return Y[a] < Y[b]
	})
	for _, i := range order {
		tr.insert(int32(i))
	}
	for _, t := range tr.Tris {
		if t.Dead || int(t.V[0]) >= np || int(t.V[1]) >= np || int(t.V[2]) >= np {
			continue
		}
		tris = append(tris, t.V)
	}
	// Triangles whose circumcircle reached a super vertex are gone, fill the hull back in
	var (
		inMesh = make([]bool, np)
		stray  []int32
		added  []int
	)
	for _, t := range tris {
		inMesh[t[0]], inMesh[t[1]], inMesh[t[2]] = true, true, true
	}
	for i := 0; i < np; i++ {
		if !inMesh[i] && !tr.skipped[i] {
			stray = append(stray, int32(i))
		}
	}
	if tris, added = closeHull(X, Y, tris, stray); len(added) != 0 {
		legalize(X, Y, tris, added)
	}
	return
}

type edgeKey [2]int32

func undirected(a, b int32) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

/*
closeHull adds triangles until the boundary of tris is convex and every vertex
that lost all of its triangles is attached again. A boundary corner a -> b -> c
that turns clockwise is capped with the triangle a-c-b when no other vertex lies
inside it. When no corner can be capped, a stray vertex is joined to the
boundary edge whose circumcircle with it is empty. The indices of the new
triangles are returned.
*/
func closeHull(X, Y []float64, tris [][3]int32, stray []int32) (out [][3]int32, added []int) {
	out = tris
	tol := hullTolerance(X, Y)
	for {
		directed := make(map[edgeKey]bool, 3*len(out))
		for _, t := range out {
			for i := 0; i < 3; i++ {
				directed[edgeKey{t[i], t[(i+1)%3]}] = true
			}
		}
		var (
			boundary []edgeKey
			next     = make(map[int32][]int32)
		)
		for e := range directed {
			if !directed[edgeKey{e[1], e[0]}] {
				boundary = append(boundary, e)
				next[e[0]] = append(next[e[0]], e[1])
			}
		}
		if len(boundary) == 0 {
			return
		}
		sort.Slice(boundary, func(i, j int) bool {
			if boundary[i][0] != boundary[j][0] {
				return boundary[i][0] < boundary[j][0]
			}
			return boundary[i][1] < boundary[j][1]
		})
		blockers := append([]int32{}, stray...)
		for _, e := range boundary {
			blockers = append(blockers, e[0])
		}
		var (
			used  = make(map[int32]bool)
			grown bool
		)
		for _, e := range boundary {
			a, b := e[0], e[1]
			if len(next[b]) != 1 || used[a] || used[b] {
				continue
			}
			c := next[b][0]
			if c == a || used[c] {
				continue
			}
			if orient(X[a], Y[a], X[b], Y[b], X[c], Y[c]) >= -tol {
				continue
			}
			if blocked(X, Y, a, c, b, blockers, tol) {
				continue
			}
			added = append(added, len(out))
			out = append(out, [3]int32{a, c, b})
			used[a], used[b], used[c] = true, true, true
			grown = true
		}
		if grown {
			continue
		}
		k, t, ok := attachStray(X, Y, boundary, stray, blockers, tol)
		if !ok {
			return
		}
		added = append(added, len(out))
		out = append(out, t)
		stray = append(stray[:k], stray[k+1:]...)
	}
}

// attachStray finds a stray vertex and a boundary edge that form an empty triangle outside the mesh
func attachStray(X, Y []float64, boundary []edgeKey, stray, blockers []int32, tol float64) (k int, t [3]int32, ok bool) {
	for _, e := range boundary {
		a, b := e[0], e[1]
		best := -1
		for i, p := range stray {
			if orient(X[a], Y[a], X[b], Y[b], X[p], Y[p]) >= -tol {
				continue
			}
			if best < 0 {
				best = i
				continue
			}
			q := stray[best]
			if IsIllegalEdge(X[p], Y[p], X[a], Y[a], X[q], Y[q], X[b], Y[b]) {
				best = i
			}
		}
		if best < 0 {
			continue
		}
		p := stray[best]
		if blocked(X, Y, a, p, b, blockers, tol) {
			continue
		}
		if crossesBoundary(X, Y, a, p, boundary) || crossesBoundary(X, Y, p, b, boundary) {
			continue
		}
		return best, [3]int32{a, p, b}, true
	}
	return
}

func crossesBoundary(X, Y []float64, a, b int32, boundary []edgeKey) bool {
	for _, e := range boundary {
		c, d := e[0], e[1]
		if c == a || c == b || d == a || d == b {
			continue
		}
		o1 := orient(X[a], Y[a], X[b], Y[b], X[c], Y[c])
		o2 := orient(X[a], Y[a], X[b], Y[b], X[d], Y[d])
		o3 := orient(X[c], Y[c], X[d], Y[d], X[a], Y[a])
		o4 := orient(X[c], Y[c], X[d], Y[d], X[b], Y[b])
		if o1*o2 < 0 && o3*o4 < 0 {
			return true
		}
	}
	return false
}

func hullTolerance(X, Y []float64) float64 {
	var d float64
	for i := range X {
		d = math.Max(d, math.Max(math.Abs(X[i]), math.Abs(Y[i])))
	}
	return 1.e-12 * math.Max(d*d, 1)
}

// blocked reports whether any of the candidate vertices sits inside the CCW triangle a-b-c
func blocked(X, Y []float64, a, b, c int32, candidates []int32, tol float64) bool {
	for _, p := range candidates {
		if p == a || p == b || p == c {
			continue
		}
		if orient(X[a], Y[a], X[b], Y[b], X[p], Y[p]) > -tol &&
			orient(X[b], Y[b], X[c], Y[c], X[p], Y[p]) > -tol &&
			orient(X[c], Y[c], X[a], Y[a], X[p], Y[p]) > -tol {
			return true
		}
	}
	return false
}

/*
legalize flips illegal edges in place, starting from the edges of the listed
triangles, until every reachable edge satisfies the empty circumcircle test.
*/
func legalize(X, Y []float64, tris [][3]int32, seed []int) {
	owners := make(map[edgeKey][]int, 3*len(tris))
	for k, t := range tris {
		for i := 0; i < 3; i++ {
			key := undirected(t[i], t[(i+1)%3])
			owners[key] = append(owners[key], k)
		}
	}
	var queue []edgeKey
	for _, k := range seed {
		t := tris[k]
		for i := 0; i < 3; i++ {
			queue = append(queue, undirected(t[i], t[(i+1)%3]))
		}
	}
	replace := func(key edgeKey, from, to int) {
		for i, k := range owners[key] {
			if k == from {
				owners[key][i] = to
				return
			}
		}
	}
	limit := 16*len(tris) + 64
	for step := 0; step < limit && len(queue) != 0; step++ {
		key := queue[0]
		queue = queue[1:]
		own := owners[key]
		if len(own) != 2 {
			continue
		}
		t1, t2 := own[0], own[1]
		// Rotate so that t1 = (u, v, p) and t2 = (v, u, q)
		u, v, p := rotateTo(tris[t1], key)
		if u < 0 {
			continue
		}
		q := opposite(tris[t2], u, v)
		if q < 0 {
			continue
		}
		if !IsIllegalEdge(X[q], Y[q], X[u], Y[u], X[v], Y[v], X[p], Y[p]) {
			continue
		}
		if orient(X[u], Y[u], X[q], Y[q], X[p], Y[p]) <= 0 ||
			orient(X[q], Y[q], X[v], Y[v], X[p], Y[p]) <= 0 {
			continue
		}
		tris[t1] = [3]int32{u, q, p}
		tris[t2] = [3]int32{q, v, p}
		delete(owners, key)
		owners[undirected(p, q)] = []int{t1, t2}
		replace(undirected(u, q), t2, t1)
		replace(undirected(v, p), t1, t2)
		queue = append(queue, undirected(u, q), undirected(q, v), undirected(v, p), undirected(p, u))
	}
}

// rotateTo returns the triangle's vertices as (u, v, p) with u -> v along the edge
func rotateTo(t [3]int32, key edgeKey) (u, v, p int32) {
	for i := 0; i < 3; i++ {
		a, b := t[i], t[(i+1)%3]
		if undirected(a, b) == key {
			return a, b, t[(i+2)%3]
		}
	}
	return -1, -1, -1
}

// opposite returns the vertex of t that carries the directed edge v -> u
func opposite(t [3]int32, u, v int32) int32 {
	for i := 0; i < 3; i++ {
		if t[i] == v && t[(i+1)%3] == u {
			return t[(i+2)%3]
		}
	}
	return -1
}

func newTriangulator(X, Y []float64) (tr *triangulator) {
	var (
		np                     = len(X)
		xmin, xmax, ymin, ymax = X[0], X[0], Y[0], Y[0]
	)
	for i := 1; i < np; i++ {
		xmin, xmax = math.Min(xmin, X[i]), math.Max(xmax, X[i])
		ymin, ymax = math.Min(ymin, Y[i]), math.Max(ymax, Y[i])
	}
	d := math.Max(xmax-xmin, ymax-ymin)
	if d == 0 {
		d = 1
	}
	mx, my := 0.5*(xmin+xmax), 0.5*(ymin+ymax)
	// Super triangle vertices live past the end of the input arrays
	tr = &triangulator{
		X:       append(append([]float64{}, X...), mx-100*d, mx+100*d, mx),
		Y:       append(append([]float64{}, Y...), my-100*d, my-100*d, my+100*d),
		skipped: make([]bool, np),
	}
	n := int32(np)
	tr.Tris = append(tr.Tris, dTri{
		V:   [3]int32{n, n + 1, n + 2},
		Adj: [3]int32{-1, -1, -1},
	})
	return
}

func (tr *triangulator) inCircle(t int32, p int32) bool {
	v := tr.Tris[t].V
	return IsIllegalEdge(tr.X[p], tr.Y[p],
		tr.X[v[0]], tr.Y[v[0]], tr.X[v[1]], tr.Y[v[1]], tr.X[v[2]], tr.Y[v[2]])
}

func (tr *triangulator) contains(t int32, px, py float64) bool {
	v := tr.Tris[t].V
	for i := 0; i < 3; i++ {
		a, b := v[i], v[(i+1)%3]
		if orient(tr.X[a], tr.Y[a], tr.X[b], tr.Y[b], px, py) < 0 {
			return false
		}
	}
	return true
}

// locate walks from the last created triangle toward the point
func (tr *triangulator) locate(px, py float64) int32 {
	var (
		t     = tr.last
		limit = len(tr.Tris) + 8
	)
	for step := 0; step < limit; step++ {
		v := tr.Tris[t].V
		moved := false
		for i := 0; i < 3; i++ {
			a, b := v[i], v[(i+1)%3]
			if orient(tr.X[a], tr.Y[a], tr.X[b], tr.Y[b], px, py) < 0 {
				if next := tr.Tris[t].Adj[i]; next >= 0 {
					t = next
					moved = true
					break
				}
			}
		}
		if !moved {
			return t
		}
	}
	for i := range tr.Tris {
		if !tr.Tris[i].Dead && tr.contains(int32(i), px, py) {
			return int32(i)
		}
	}
	return tr.last
}

type hullEdge struct {
	A, B, Outer int32
}

func (tr *triangulator) insert(p int32) {
	var (
		px, py = tr.X[p], tr.Y[p]
		start  = tr.locate(px, py)
	)
	for _, v := range tr.Tris[start].V {
		if math.Abs(tr.X[v]-px) < 1.e-12 && math.Abs(tr.Y[v]-py) < 1.e-12 {
			tr.skipped[p] = true
			return
		}
	}
	tr.epoch++
	if len(tr.stamp) < len(tr.Tris) {
		tr.stamp = append(tr.stamp, make([]int32, len(tr.Tris)-len(tr.stamp))...)
	}
	// Grow the cavity of triangles whose circumcircle holds p
	bad := []int32{start}
	tr.stamp[start] = tr.epoch
	for k := 0; k < len(bad); k++ {
		for _, nb := range tr.Tris[bad[k]].Adj {
			if nb < 0 || tr.stamp[nb] == tr.epoch {
				continue
			}
			if tr.inCircle(nb, p) {
				tr.stamp[nb] = tr.epoch
				bad = append(bad, nb)
			}
		}
	}
	var edges []hullEdge
	for _, t := range bad {
		tri := &tr.Tris[t]
		for i := 0; i < 3; i++ {
			nb := tri.Adj[i]
			if nb >= 0 && tr.stamp[nb] == tr.epoch {
				continue
			}
			edges = append(edges, hullEdge{A: tri.V[i], B: tri.V[(i+1)%3], Outer: nb})
		}
		tri.Dead = true
	}
	// Fan the cavity boundary to p
	var (
		byA   = make(map[int32]int32, len(edges))
		byB   = make(map[int32]int32, len(edges))
		first = int32(len(tr.Tris))
	)
	for k, e := range edges {
		nt := first + int32(k)
		tr.Tris = append(tr.Tris, dTri{
			V:   [3]int32{e.A, e.B, p},
			Adj: [3]int32{e.Outer, -1, -1},
		})
		byA[e.A], byB[e.B] = nt, nt
		if e.Outer >= 0 {
			out := &tr.Tris[e.Outer]
			for i := 0; i < 3; i++ {
				if out.V[i] == e.B && out.V[(i+1)%3] == e.A {
					out.Adj[i] = nt
					break
				}
			}
		}
	}
	for k, e := range edges {
		nt := &tr.Tris[first+int32(k)]
		if nb, ok := byA[e.B]; ok {
			nt.Adj[1] = nb
		}
		if nb, ok := byB[e.A]; ok {
			nt.Adj[2] = nb
		}
	}
	tr.last = first
}
