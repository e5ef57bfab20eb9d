package wasmhost

import (
	"context"
	"errors"
	"fmt"

	"github.com/skyne98/neptune"
	"github.com/skyne98/neptune/backend"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
)

// Names the guest imports.
const (
	ModuleName   = "env"
	FunctionName = "calculate_matrices"
)

// ErrOutOfBounds is raised when a buffer does not fit in guest memory.
var ErrOutOfBounds = errors.New("neptune/wasmhost: buffer outside guest memory")

// ErrNoMemory is raised when the calling module exports no memory.
var ErrNoMemory = errors.New("neptune/wasmhost: caller has no memory")

var params = []api.ValueType{api.ValueTypeI32, api.ValueTypeI32, api.ValueTypeI32, api.ValueTypeI32}

// Instantiate defines the host module "env" on r and instantiates it.
// Guests import
//
//	(func $calculate_matrices (import "env" "calculate_matrices")
//	  (param $transform_ptr i32) (param $transform_len i32)
//	  (param $matrix_ptr i32) (param $matrix_len i32))
//
// where the pointers are offsets into the caller's own memory and the
// lengths are record counts. Each call composes through k, writing the
// matrices straight into guest memory.
//
// Contract violations trap: the guest's caller sees the error from
// api.Function.Call.
func Instantiate(ctx context.Context, r wazero.Runtime, k backend.Kernel) (api.Module, error) {
	if k == nil {
		return nil, backend.ErrKernelNotAvailable
	}
	h := &host{kernel: k}

	mod, err := r.NewHostModuleBuilder(ModuleName).
		NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(h.calculateMatrices), params, nil).
		WithParameterNames("transform_ptr", "transform_len", "matrix_ptr", "matrix_len").
		Export(FunctionName).
		Instantiate(ctx)
	if err != nil {
		return nil, fmt.Errorf("wasmhost: instantiate %s: %w", ModuleName, err)
	}

	neptune.Logger().Info("wasm host module ready", "module", ModuleName, "kernel", k.Name())
	return mod, nil
}

type host struct {
	kernel backend.Kernel
}

func (h *host) calculateMatrices(_ context.Context, caller api.Module, stack []uint64) {
	transformPtr := api.DecodeU32(stack[0])
	transformLen := api.DecodeI32(stack[1])
	matrixPtr := api.DecodeU32(stack[2])
	matrixLen := api.DecodeI32(stack[3])

	if transformLen < 0 || matrixLen < 0 {
		panic(fmt.Errorf("%w: negative count (%d transforms, %d matrices)", neptune.ErrLengthMismatch, transformLen, matrixLen))
	}
	if transformLen != matrixLen {
		panic(fmt.Errorf("%w: %d transforms, %d matrices", neptune.ErrLengthMismatch, transformLen, matrixLen))
	}

	mem := caller.Memory()
	if mem == nil {
		panic(ErrNoMemory)
	}

	in := view(mem, transformPtr, uint64(transformLen)*neptune.TransformSize)
	out := view(mem, matrixPtr, uint64(matrixLen)*neptune.MatrixSize)

	h.kernel.ComposeBatch(neptune.TransformsFromBytes(in), neptune.MatricesFromBytes(out))
}

// view returns the guest memory at [ptr, ptr+size) without copying.
func view(mem api.Memory, ptr uint32, size uint64) []byte {
	if uint64(ptr)+size > uint64(mem.Size()) {
		panic(fmt.Errorf("%w: [%d, %d) exceeds %d bytes", ErrOutOfBounds, ptr, uint64(ptr)+size, mem.Size()))
	}
	b, ok := mem.Read(ptr, uint32(size))
	if !ok {
		panic(fmt.Errorf("%w: [%d, %d)", ErrOutOfBounds, ptr, uint64(ptr)+size))
	}
	return b
}
