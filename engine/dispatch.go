package engine

import (
	"fmt"

	"github.com/katalvlaran/lvraster/algebra"
	"github.com/katalvlaran/lvraster/classify"
	"github.com/katalvlaran/lvraster/expr"
	"github.com/katalvlaran/lvraster/gridgraph"
	"github.com/katalvlaran/lvraster/raster"
	"github.com/katalvlaran/lvraster/reduce"
	"github.com/katalvlaran/lvraster/terrain"
)

// eval runs the kernel of n over its resolved operands.
func (e *Evaluator) eval(n *expr.Node, args []raster.Value) (raster.Value, error) {
	p := n.Params()
	switch n.Op() {
	case expr.OpSource:
		r, err := p.Source.Load()
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", p.Source.ID(), err)
		}
		if r == nil {
			return nil, fmt.Errorf("load %s: nil raster: %w", p.Source.ID(), raster.ErrInvalidArgument)
		}
		return r, nil
	case expr.OpConstant:
		return p.Value, nil
	case expr.OpIdentity:
		return algebra.Identity(p.Ints[0])

	case expr.OpBinary:
		return algebra.Binary(p.Binary, args[0], args[1])
	case expr.OpUnary:
		return algebra.Unary(p.Unary, args[0])
	case expr.OpWhere:
		return algebra.Where(args[0], args[1], args[2])

	case expr.OpSelect:
		if len(p.Names) == 0 && len(p.Ints) > 0 {
			return selectIndex(args[0], p.Ints)
		}
		return algebra.Select(args[0], p.Names...)
	case expr.OpRename:
		return algebra.Rename(args[0], p.Names...)
	case expr.OpCat:
		return algebra.Cat(args...)
	case expr.OpUpdateMask:
		return algebra.UpdateMask(args[0], args[1])
	case expr.OpUnmask:
		return algebra.Unmask(args[0], p.Floats[0])
	case expr.OpNormalizedDifference:
		return algebra.NormalizedDifference(args[0], p.Names[0], p.Names[1])

	case expr.OpToArray:
		return algebra.ToArray(args[0], p.Ints[0])
	case expr.OpArrayRepeat:
		return algebra.ArrayRepeat(args[0], p.Ints[0], p.Ints[1])
	case expr.OpArrayTranspose:
		return algebra.ArrayTranspose(args[0], p.Ints[0], p.Ints[1])
	case expr.OpArrayProject:
		return algebra.ArrayProject(args[0], p.Ints...)
	case expr.OpArraySlice:
		return algebra.ArraySlice(args[0], p.Ints[0], p.Ints[1], p.Ints[2], p.Ints[3])
	case expr.OpArrayGet:
		return algebra.ArrayGet(args[0], p.Ints...)
	case expr.OpArrayFlatten:
		return algebra.ArrayFlatten(args[0], p.Labels, p.Names[0])

	case expr.OpMatrixMultiply:
		return algebra.MatrixMultiply(args[0], args[1])
	case expr.OpMatrixTranspose:
		return algebra.MatrixTranspose(args[0])
	case expr.OpMatrixInverse:
		return algebra.MatrixInverse(args[0])
	case expr.OpMatrixPseudoInverse:
		tol := p.Floats[0]
		if tol <= 0 {
			tol = e.pinvTol
		}
		return algebra.MatrixPseudoInverse(args[0], tol)
	case expr.OpEigen:
		return algebra.Eigen(args[0], e.eigenTol, e.eigenSweeps)
	case expr.OpMatrixToDiag:
		return algebra.MatrixToDiag(args[0])

	case expr.OpFocalMedian:
		return algebra.FocalMedian(args[0], p.Ints[0])

	case expr.OpReduceRegion:
		r, err := asRaster(args[0])
		if err != nil {
			return nil, err
		}
		scale := p.Floats[0]
		if scale <= 0 {
			scale = e.defaultScale
		}
		return reduce.Region(r, p.Reducer, p.Geom, scale)
	case expr.OpComposite:
		rs := make([]*raster.Raster, len(args))
		for i, a := range args {
			r, err := asRaster(a)
			if err != nil {
				return nil, err
			}
			rs[i] = r
		}
		return reduce.Composite(p.Reducer, rs...)

	case expr.OpClassify:
		r, err := asRaster(args[0])
		if err != nil {
			return nil, err
		}
		return classify.Predict(p.Trained, r)
	case expr.OpConnectedPixelCount:
		r, err := asRaster(args[0])
		if err != nil {
			return nil, err
		}
		return gridgraph.ConnectedPixelCount(r, p.Ints[0], p.Conn)
	case expr.OpTerrain:
		r, err := asRaster(args[0])
		if err != nil {
			return nil, err
		}
		return terrain.Terrain(r, p.Names[0])
	case expr.OpHillshade:
		r, err := asRaster(args[0])
		if err != nil {
			return nil, err
		}
		return terrain.Hillshade(r, p.Names[0], p.Floats[0], p.Floats[1])
	}

	return nil, fmt.Errorf("operation %q: %w", n.Op(), raster.ErrUnsupported)
}

func asRaster(v raster.Value) (*raster.Raster, error) {
	r, ok := v.(*raster.Raster)
	if !ok {
		return nil, fmt.Errorf("want raster, got %s: %w", v.Kind(), raster.ErrShapeMismatch)
	}

	return r, nil
}

// selectIndex is Select by band position.
func selectIndex(v raster.Value, index []int) (*raster.Raster, error) {
	r, err := asRaster(v)
	if err != nil {
		return nil, err
	}
	all := r.BandNames()
	names := make([]string, len(index))
	for i, k := range index {
		if k < 0 || k >= len(all) {
			return nil, fmt.Errorf("band index %d of %d: %w", k, len(all), raster.ErrBandNotFound)
		}
		names[i] = all[k]
	}

	return algebra.Select(r, names...)
}
