package client

const proposalFields = `
    id
    pluginProposalId
    failureMap
    creator
    metadata
    startDate
    endDate
    creationBlockNumber
    snapshotBlock
    executed
    potentiallyExecutable
    actions {
      id
      to
      value
      data
    }
    dao {
      id
    }
`

const ProposalsQuery = `
query ProposalsQuery($pluginId: ID!) {
  pluginProposals(where: { plugin: $pluginId }) {` + proposalFields + `  }
}
`

const ProposalQuery = `
query ProposalQuery($proposalId: ID!) {
  pluginProposal(id: $proposalId) {` + proposalFields + `  }
}
`

const DepositsQuery = `
query DepositsQueries($pluginId: ID!) {
  pluginDeposits(where: { plugin: $pluginId }) {
    id
    voter
    amount
    snapshotBlock
    txHash
  }
}
`

const VoterDepositsQuery = `
query VoterDepositsQuery($pluginId: ID!, $voter: String!) {
  pluginDeposits(where: { plugin: $pluginId, voter: $voter }) {
    id
    voter
    amount
    snapshotBlock
    txHash
  }
}
`

const VotesQuery = `
query VotesQuery($proposalId: ID!, $voter: String!) {
  pluginVotes(where: { proposal: $proposalId, voter: $voter }, first: 1) {
    id
    voter
    option
  }
}
`
