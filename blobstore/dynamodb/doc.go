// Package dynamodb provides a BlobStore that keeps each blob in a single DynamoDB item.
//
// The table needs a string partition key "namespace" and a string sort key
// "name". Blob content is stored in the binary attribute "data". DynamoDB caps
// items at 400 KB, which is far above the size of a compressed subject store.
//
// Store also implements blobstore.Locker with a conditional-write lease item,
// so several processes can share one table safely.
package dynamodb
