package main

import (
	"context"

	"github.com/alnah/go-blogmd"
)

// Converter is the conversion service used by the CLI.
type Converter interface {
	Convert(ctx context.Context, input blogmd.Input) (*blogmd.ConvertResult, error)
}

// Compile-time interface implementation check.
var _ Converter = (*blogmd.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire() (Converter, error)
	Release(Converter)
	Size() int
	Close() error
}

// converterPool adapts blogmd.ConverterPool to Pool.
type converterPool struct {
	pool *blogmd.ConverterPool
}

// Compile-time check that converterPool implements Pool.
var _ Pool = (*converterPool)(nil)

func newConverterPool(size int, opts ...blogmd.Option) Pool {
	return &converterPool{pool: blogmd.NewConverterPool(size, opts...)}
}

func (p *converterPool) Acquire() (Converter, error) {
	conv, err := p.pool.Acquire()
	if err != nil {
		return nil, err
	}
	return conv, nil
}

func (p *converterPool) Release(c Converter) {
	if conv, ok := c.(*blogmd.Converter); ok {
		p.pool.Release(conv)
	}
}

func (p *converterPool) Size() int {
	return p.pool.Size()
}

func (p *converterPool) Close() error {
	return p.pool.Close()
}

// convertOne runs a single conversion on a one-converter pool.
func convertOne(ctx context.Context, env *Environment, opts []blogmd.Option, input blogmd.Input) (*blogmd.ConvertResult, error) {
	pool := env.NewPool(1, opts...)
	defer pool.Close()

	conv, err := pool.Acquire()
	if err != nil {
		return nil, err
	}
	defer pool.Release(conv)

	return conv.Convert(ctx, input)
}
