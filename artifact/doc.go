// Package artifact persists computed embeddings together with their
// label maps.
//
// An Artifact bundles the ordered label list, the label-to-row index
// and the coordinate matrix. Save wraps it in a self-describing
// container (magic bytes, codec name, compression type) and writes it
// to any blobstore.BlobStore; Load selects codec and compression from
// the recorded header, so readers need no out-of-band configuration:
//
//	art, err := artifact.New(classes, emb)
//	err = artifact.Save(ctx, store, "classes.heb", art,
//	    artifact.WithCompression(artifact.CompressionZSTD),
//	)
//
//	art, err = artifact.Load(ctx, store, "classes.heb")
//	row, ok := art.Row("n02084071")
package artifact
