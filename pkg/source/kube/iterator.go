package kube

import (
	"context"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/aryankumar/parex/pkg/parex"
)

// target is a namespace still to be expanded; namespace is nil until fetched
type target struct {
	name      string
	namespace *corev1.Namespace
}

// iterator expands one namespace at a time into a small buffer
type iterator struct {
	source  *Source
	cfg     parex.WalkConfig
	targets []target
	pos     int
	items   []parex.Item
	failed  []error
	stopped bool
}

func (it *iterator) Next(ctx context.Context) (parex.Item, error) {
	for !it.stopped {
		if ctx.Err() != nil {
			return parex.Item{}, parex.ErrIteratorDone
		}

		if n := len(it.failed); n > 0 {
			err := it.failed[n-1]
			it.failed = it.failed[:n-1]
			return parex.Item{}, err
		}

		if len(it.items) > 0 {
			item := it.items[0]
			it.items = it.items[1:]
			return item, nil
		}

		if it.pos >= len(it.targets) {
			break
		}
		t := it.targets[it.pos]
		it.pos++
		it.expand(ctx, t)
	}
	return parex.Item{}, parex.ErrIteratorDone
}

func (it *iterator) Stop() {
	it.stopped = true
	it.items = nil
	it.failed = nil
}

// expand buffers a namespace and, depth permitting, its pods and services
func (it *iterator) expand(ctx context.Context, t target) {
	client := it.source.client.CoreV1()

	ns := t.namespace
	if ns == nil {
		fetched, err := client.Namespaces().Get(ctx, t.name, metav1.GetOptions{})
		if err != nil {
			it.fail(t.name, err)
			return
		}
		ns = fetched
	}
	it.items = append(it.items, namespaceItem(ns))

	if !it.cfg.Descend(0) {
		return
	}

	opts := metav1.ListOptions{LabelSelector: it.source.labelSelector}

	pods, err := client.Pods(ns.Name).List(ctx, opts)
	if err != nil {
		it.fail(ns.Name+"/pods", err)
	} else {
		for i := range pods.Items {
			it.items = append(it.items, podItem(&pods.Items[i]))
		}
	}

	if it.source.skipServices {
		return
	}

	services, err := client.Services(ns.Name).List(ctx, opts)
	if err != nil {
		it.fail(ns.Name+"/services", err)
		return
	}
	for i := range services.Items {
		it.items = append(it.items, serviceItem(&services.Items[i]))
	}
}

func (it *iterator) fail(path string, err error) {
	it.failed = append(it.failed, classify(path, err))
}
