// Package wasmhost exposes batch composition to WebAssembly guests.
//
// A guest owns its descriptors and matrices in linear memory and calls the
// imported env.calculate_matrices with offsets and counts. The host builds
// views over guest memory once per call and composes in place; nothing is
// copied across the boundary.
//
//	r := wazero.NewRuntime(ctx)
//	defer r.Close(ctx)
//
//	k := backend.MustDefault()
//	defer k.Close()
//
//	if _, err := wasmhost.Instantiate(ctx, r, k); err != nil {
//		return err
//	}
//	guest, err := r.Instantiate(ctx, wasmBytes)
package wasmhost
