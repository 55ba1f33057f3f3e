package gql

// Schema is the storefront GraphQL schema. The cart mutations are
// deliberately unauthenticated: anyone holding a cart id may mutate it.
const Schema = `
	schema {
		query: Query
		mutation: Mutation
	}

	type Query {
		cart(id: ID!): Cart!
	}

	type Mutation {
		createCart: Cart!
		addCartItem(id: ID!, cartItem: CartItemInput!): Cart!
		deleteCartItem(id: ID!, cartItemId: ID!): Cart!
		updateCartItem(id: ID!, cartItemId: ID!, quantity: Int!): Cart!
		emptyCart(id: ID!): Cart!
		createPaymentIntent(amount: Float!): PaymentIntent!
	}

	input CartItemInput {
		product: ID!
		variant: ID
		quantity: Int!
		price: Float!
		image: String
	}

	type Cart {
		id: ID!
		total: Float!
		items: [CartItem!]!
	}

	type CartItem {
		id: ID!
		quantity: Int!
		price: Float!
		image: String
		product: Product!
		variant: Variant
	}

	type Product {
		id: ID!
		name: String!
		price: Float!
	}

	type Variant {
		id: ID!
		name: String!
		price: Float!
		selectedOptions: [SelectedOption!]!
	}

	type SelectedOption {
		name: String!
		value: String!
	}

	type PaymentIntent {
		clientSecret: String!
	}
`
