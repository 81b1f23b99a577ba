package graphql

import (
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

// Schema is the query schema of the memory index. memoryMinteds accepts the
// same arguments as the hosted index so either can serve the vault CLI.
const Schema = `
scalar BigInt

enum OrderDirection {
  asc
  desc
}

enum MemoryMinted_orderBy {
  date
}

input MemoryMinted_filter {
  eventType_contains_nocase: String
  date_gte: BigInt
  creator: String
}

type MemoryMinted {
  id: ID!
  tokenId: BigInt!
  creator: String!
  ipfsHash: String!
  eventType: String!
  date: BigInt!
  tags: [String!]!
  blockNumber: BigInt!
  blockTimestamp: BigInt!
  transactionHash: String!
}

type Transfer {
  id: ID!
  from: String!
  to: String!
  tokenId: BigInt!
  blockNumber: BigInt!
  blockTimestamp: BigInt!
  transactionHash: String!
}

type Query {
  memoryMinteds(
    where: MemoryMinted_filter
    orderBy: MemoryMinted_orderBy = date
    orderDirection: OrderDirection = desc
    first: Int = 100
    skip: Int = 0
  ): [MemoryMinted!]!
  memory(id: ID!): MemoryMinted
  transfers(tokenId: BigInt!, first: Int = 50, skip: Int = 0): [Transfer!]!
}
`

var schema = gqlparser.MustLoadSchema(&ast.Source{Name: "vault.graphql", Input: Schema})
